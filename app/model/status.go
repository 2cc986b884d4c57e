package model

// Status komplain.
const (
	ComplaintPending    = "pending"
	ComplaintProcessing = "processing"
	ComplaintCompleted  = "completed"
)

// Status approval akun (berlaku untuk AdminProfile dan SipebaruUser).
const (
	AccountPending  = "pending"
	AccountActive   = "active"
	AccountRejected = "rejected"
)

// ValidComplaintStatus mengecek apakah s adalah status komplain yang dikenal.
func ValidComplaintStatus(s string) bool {
	return s == ComplaintPending || s == ComplaintProcessing || s == ComplaintCompleted
}

// CanTransition adalah aturan tunggal state machine approval akun:
// hanya pending -> active dan pending -> rejected yang diizinkan.
// active dan rejected bersifat terminal.
func CanTransition(from, to string) bool {
	if from != AccountPending {
		return false
	}
	return to == AccountActive || to == AccountRejected
}
