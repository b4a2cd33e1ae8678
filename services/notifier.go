package services

import (
	"log"

	"gorm.io/gorm"

	"github.com/medicore/hospital-app/models"
	"github.com/medicore/hospital-app/utils"
)

// Mailer delivers one message to an email address. utils.SendEmail in
// production; nil disables mail entirely (tests, workers without SMTP).
type Mailer func(to, subject, body string) error

// Notifier turns appointment state changes into inbox records for the
// affected users, with best-effort email delivery on top.
type Notifier struct {
	db     *gorm.DB
	mailer Mailer
}

func NewNotifier(db *gorm.DB) *Notifier {
	return &Notifier{db: db, mailer: utils.SendEmail}
}

// Notify writes an unread notification for the user and, when a mailer is
// configured, emails them too. A zero userID means the participant has no
// linked account; that is not an error, the notification is simply skipped.
// Mail failures are logged and swallowed - the state transition already
// committed and must not be rolled back over SMTP trouble.
func (n *Notifier) Notify(userID uint, title, body string, ntype models.NotificationType, relatedID uint) error {
	if userID == 0 {
		return nil
	}
	notification := models.Notification{
		UserID:    userID,
		Title:     title,
		Body:      body,
		Type:      ntype,
		RelatedID: relatedID,
	}
	if err := n.db.Create(&notification).Error; err != nil {
		return err
	}

	if n.mailer == nil {
		return nil
	}
	var user models.User
	if err := n.db.First(&user, userID).Error; err != nil || user.Email == "" {
		return nil
	}
	if err := n.mailer(user.Email, title, body); err != nil {
		log.Printf("Failed to email notification %d to %s: %v", notification.ID, user.Email, err)
	}
	return nil
}
