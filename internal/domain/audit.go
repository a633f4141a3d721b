package domain

import "time"

// AuditEntry запись аудита мутирующей операции.
// Обязательный контракт наблюдаемости: каждая мутация пишет запись
// (кто, что, над какой таблицей/записью, человекочитаемое описание).
type AuditEntry struct {
	ID          int64
	Actor       string
	Action      string
	TableName   string
	RecordID    int64
	Description string
	CreatedAt   time.Time
}

// Actions аудита
const (
	AuditActionCreate              = "create"
	AuditActionUpdate              = "update"
	AuditActionDelete              = "delete"
	AuditActionStatusChange        = "status_change"
	AuditActionPaymentStatusChange = "payment_status_change"
	AuditActionPaymentRecorded     = "payment_recorded"
	AuditActionPaymentVerified     = "payment_verified"
	AuditActionPaymentRejected     = "payment_rejected"
)
