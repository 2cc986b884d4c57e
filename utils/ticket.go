package utils

import (
	"crypto/rand"
	"fmt"
)

// Karakter yang dipakai kode pengaduan. Huruf besar + angka supaya mudah
// dibacakan lewat telepon.
const complaintCodeChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// ComplaintCodeLength: panjang kode pengaduan yang dilihat pelapor.
const ComplaintCodeLength = 5

// FormatTicketNumber memformat nomor urut menjadi nomor tiket "BR-0004".
// Di atas 9999 angka tumbuh apa adanya (BR-10000).
func FormatTicketNumber(n int) string {
	return fmt.Sprintf("BR-%04d", n)
}

// GenerateComplaintCode membuat kode pengaduan acak 5 karakter (A-Z, 0-9)
// memakai crypto/rand. Keunikan dijamin oleh pemanggil (cek + retry di
// dalam transaksi insert), bukan oleh fungsi ini.
func GenerateComplaintCode() (string, error) {
	buf := make([]byte, ComplaintCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i := range buf {
		buf[i] = complaintCodeChars[int(buf[i])%len(complaintCodeChars)]
	}
	return string(buf), nil
}
