package utils

// Daftar role yang dikenal sistem. Satu user boleh memegang beberapa role
// sekaligus (tabel user_roles); untuk tampilan dan gating UI, banyak-role
// direduksi menjadi satu role efektif lewat ResolveDisplayRole.
const (
	RoleSuperAdmin = "super_admin"
	RoleAdminUtama = "admin_utama"
	RoleAdmin      = "admin"
	RoleViewer     = "viewer"
)

// rolePrecedence mendefinisikan total order:
// super_admin > admin_utama > admin > viewer.
var rolePrecedence = map[string]int{
	RoleSuperAdmin: 4,
	RoleAdminUtama: 3,
	RoleAdmin:      2,
	RoleViewer:     1,
}

// ValidRole mengecek apakah nama role dikenal.
func ValidRole(role string) bool {
	_, ok := rolePrecedence[role]
	return ok
}

// ResolveDisplayRole mereduksi himpunan role menjadi satu role efektif
// berdasarkan precedence. Role yang tidak dikenal diabaikan.
// Mengembalikan string kosong jika tidak ada role valid sama sekali.
func ResolveDisplayRole(roles []string) string {
	best := ""
	bestRank := 0
	for _, r := range roles {
		if rank := rolePrecedence[r]; rank > bestRank {
			best = r
			bestRank = rank
		}
	}
	return best
}

// CanWriteComplaints menentukan apakah role boleh membuat/mengubah/menghapus
// komplain. Hanya viewer yang read-only.
func CanWriteComplaints(role string) bool {
	return ValidRole(role) && role != RoleViewer
}

// IsAdminUtama: approval akun (approve/reject/hapus) khusus admin_utama;
// super_admin diperlakukan setara atau lebih tinggi.
func IsAdminUtama(role string) bool {
	return role == RoleAdminUtama || role == RoleSuperAdmin
}
