package domain

import "time"

type NotificationKind string

const (
	NotificationCertificateIssued NotificationKind = "certificate_issued"
	NotificationCertificateShared NotificationKind = "certificate_shared"
)

type Notification struct {
	ID          string
	RecipientID string
	Kind        NotificationKind
	Payload     map[string]string
	Read        bool
	CreatedAt   time.Time
}
