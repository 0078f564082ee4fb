// Package notifier sends the daily check-in reminder and motivation quotes as desktop
// notifications.
package notifier

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/gen2brain/beeep"

	"github.com/julianstephens/cloudcontrol/internal/checkin"
	"github.com/julianstephens/cloudcontrol/internal/constants"
	"github.com/julianstephens/cloudcontrol/internal/logger"
	"github.com/julianstephens/cloudcontrol/internal/models"
	"github.com/julianstephens/cloudcontrol/internal/utils"
)

const (
	ReminderTitle   = "CloudControl Check-in"
	ReminderBody    = "Did you stick to the rules today? Run 'cloudcontrol checkin yes|no' to log your check-in."
	MotivationTitle = "Daily Motivation"
)

// MotivationQuotes are picked at random for the motivation notification.
var MotivationQuotes = []string{
	"Every craving you resist makes the next one weaker.",
	"You are stronger than your urges.",
	"One day at a time. You've got this.",
	"Your lungs are healing right now.",
	"Remember why you started this journey.",
	"The best time to plant a tree was 20 years ago. The second best time is now.",
	"Take care of your body. It's the only place you have to live.",
	"It is health that is real wealth and not pieces of gold and silver.",
}

// SendFunc delivers one notification.
type SendFunc func(title, message string) error

// Outcome describes what a reminder run did.
type Outcome string

const (
	OutcomeSent          Outcome = "sent"
	OutcomeDisabled      Outcome = "disabled"
	OutcomeAlreadyLogged Outcome = "already_checked_in"
)

type Notifier struct {
	send SendFunc
	pick func(n int) int
}

// New returns a Notifier that delivers desktop notifications through beeep.
func New() *Notifier {
	beeep.AppName = constants.AppName
	return &Notifier{
		send: func(title, message string) error {
			return beeep.Notify(title, message, "")
		},
		pick: rand.IntN,
	}
}

// NewWithSender returns a Notifier that delivers through send and picks quotes with pick.
func NewWithSender(send SendFunc, pick func(n int) int) *Notifier {
	if pick == nil {
		pick = rand.IntN
	}
	return &Notifier{send: send, pick: pick}
}

// Notify sends a single notification.
func (n *Notifier) Notify(title, message string) error {
	if err := n.send(title, message); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	logger.Debug("Notification sent", "title", title)
	return nil
}

// RemindCheckIn sends the check-in reminder unless notifications are off or today
// already has a check-in.
func (n *Notifier) RemindCheckIn(settings models.Settings, checkins []models.CheckIn, now time.Time) (Outcome, error) {
	if !settings.NotificationsEnabled {
		return OutcomeDisabled, nil
	}
	if checkin.Today(checkins, now) != nil {
		return OutcomeAlreadyLogged, nil
	}
	if err := n.Notify(ReminderTitle, ReminderBody); err != nil {
		return "", err
	}
	return OutcomeSent, nil
}

// Motivate sends a random motivation quote, optionally prefixed with one of the
// user's own quit reasons.
func (n *Notifier) Motivate(settings models.Settings) (Outcome, string, error) {
	if !settings.NotificationsEnabled {
		return OutcomeDisabled, "", nil
	}
	quote := MotivationQuotes[n.pick(len(MotivationQuotes))]
	if len(settings.QuitReasons) > 0 {
		reason := settings.QuitReasons[n.pick(len(settings.QuitReasons))]
		quote = fmt.Sprintf("%s Remember: %s", quote, reason)
	}
	if err := n.Notify(MotivationTitle, quote); err != nil {
		return "", "", err
	}
	return OutcomeSent, quote, nil
}

// MotivationTime returns the time of day the motivation quote goes out: on the hour,
// one hour before the check-in reminder, wrapping past midnight.
func MotivationTime(notificationTime string) (string, error) {
	t, err := utils.ParseTime(notificationTime)
	if err != nil {
		return "", fmt.Errorf("invalid notification time %q: %w", notificationTime, err)
	}
	hour := t.Add(-constants.MotivationLeadTime).Hour()
	return fmt.Sprintf("%02d:00", hour), nil
}

// CronLines renders crontab entries that run the reminder and motivation commands.
func CronLines(notificationTime, binary string) ([]string, error) {
	remind, err := utils.ParseTime(notificationTime)
	if err != nil {
		return nil, fmt.Errorf("invalid notification time %q: %w", notificationTime, err)
	}
	motivation, err := MotivationTime(notificationTime)
	if err != nil {
		return nil, err
	}
	mt, _ := utils.ParseTime(motivation)
	return []string{
		fmt.Sprintf("%d %d * * * %s remind --motivation", mt.Minute(), mt.Hour(), binary),
		fmt.Sprintf("%d %d * * * %s remind", remind.Minute(), remind.Hour(), binary),
	}, nil
}
