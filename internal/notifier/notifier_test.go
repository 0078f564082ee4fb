package notifier

import (
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/cloudcontrol/internal/models"
	"github.com/julianstephens/cloudcontrol/internal/utils"
)

var testNow = time.Date(2025, 3, 12, 21, 0, 0, 0, time.Local)

type sent struct{ title, message string }

func recorder() (*[]sent, SendFunc) {
	var got []sent
	return &got, func(title, message string) error {
		got = append(got, sent{title, message})
		return nil
	}
}

func first(int) int { return 0 }

func TestRemindCheckIn(t *testing.T) {
	enabled := models.DefaultSettings()
	enabled.NotificationsEnabled = true
	today := []models.CheckIn{{Date: utils.DayKey(testNow), StuckToRules: true}}

	tests := []struct {
		name     string
		settings models.Settings
		checkins []models.CheckIn
		want     Outcome
		wantSent int
	}{
		{name: "disabled", settings: models.DefaultSettings(), want: OutcomeDisabled},
		{name: "already checked in", settings: enabled, checkins: today, want: OutcomeAlreadyLogged},
		{name: "due", settings: enabled, want: OutcomeSent, wantSent: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, send := recorder()
			n := NewWithSender(send, first)
			outcome, err := n.RemindCheckIn(tt.settings, tt.checkins, testNow)
			if err != nil {
				t.Fatalf("RemindCheckIn() error = %v", err)
			}
			if outcome != tt.want {
				t.Errorf("RemindCheckIn() = %s, want %s", outcome, tt.want)
			}
			if len(*got) != tt.wantSent {
				t.Errorf("sent %d notifications, want %d", len(*got), tt.wantSent)
			}
			if tt.wantSent > 0 && (*got)[0].title != ReminderTitle {
				t.Errorf("title = %q, want %q", (*got)[0].title, ReminderTitle)
			}
		})
	}
}

func TestRemindCheckInSendError(t *testing.T) {
	settings := models.DefaultSettings()
	settings.NotificationsEnabled = true
	n := NewWithSender(func(string, string) error { return errors.New("no notification daemon") }, first)
	if _, err := n.RemindCheckIn(settings, nil, testNow); err == nil {
		t.Error("RemindCheckIn() expected error from sender")
	}
}

func TestMotivate(t *testing.T) {
	got, send := recorder()
	n := NewWithSender(send, first)

	settings := models.DefaultSettings()
	if outcome, _, _ := n.Motivate(settings); outcome != OutcomeDisabled {
		t.Errorf("Motivate() with notifications off = %s, want %s", outcome, OutcomeDisabled)
	}

	settings.NotificationsEnabled = true
	settings.QuitReasons = []string{"my kids"}
	outcome, quote, err := n.Motivate(settings)
	if err != nil || outcome != OutcomeSent {
		t.Fatalf("Motivate() = %s, %v", outcome, err)
	}
	if !strings.HasPrefix(quote, MotivationQuotes[0]) || !strings.Contains(quote, "my kids") {
		t.Errorf("quote = %q", quote)
	}
	if len(*got) != 1 || (*got)[0].title != MotivationTitle {
		t.Errorf("sent = %+v", *got)
	}
}

func TestMotivationTime(t *testing.T) {
	tests := []struct{ in, want string }{
		{in: "21:00", want: "20:00"},
		{in: "21:45", want: "20:00"},
		{in: "00:30", want: "23:00"},
	}
	for _, tt := range tests {
		got, err := MotivationTime(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("MotivationTime(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
	if _, err := MotivationTime("noon"); err == nil {
		t.Error("MotivationTime(noon) expected error")
	}
}

func TestCronLines(t *testing.T) {
	got, err := CronLines("21:15", "/usr/local/bin/cloudcontrol")
	if err != nil {
		t.Fatalf("CronLines() error = %v", err)
	}
	want := []string{
		"0 20 * * * /usr/local/bin/cloudcontrol remind --motivation",
		"15 21 * * * /usr/local/bin/cloudcontrol remind",
	}
	if !slices.Equal(got, want) {
		t.Errorf("CronLines() = %v, want %v", got, want)
	}
}
