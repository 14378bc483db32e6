package domain

const (
	notificationTitle       = "Reminder"
	notificationGenericBody = "You have an upcoming event or task."
)

type Notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Tag   string `json:"tag"`
}

// NewNotification builds the notification for r. The tag is the reminder id
// so that clients collapse repeated deliveries of the same reminder.
func NewNotification(r Reminder) Notification {
	body := r.Message
	if body == "" {
		body = r.RelatedTitle
	}
	if body == "" {
		body = notificationGenericBody
	}

	return Notification{
		Title: notificationTitle,
		Body:  body,
		Tag:   r.ID,
	}
}

// Permission mirrors the tri-state browser notification permission.
type Permission string

const (
	PermissionDefault Permission = "default"
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

func (p Permission) String() string {
	return string(p)
}

func (p Permission) IsGranted() bool {
	return p == PermissionGranted
}

// IsDecided reports whether the user already answered a permission request.
func (p Permission) IsDecided() bool {
	return p == PermissionGranted || p == PermissionDenied
}

func ParsePermission(s string) (Permission, bool) {
	switch Permission(s) {
	case PermissionDefault, PermissionGranted, PermissionDenied:
		return Permission(s), true
	default:
		return PermissionDefault, false
	}
}
