package services

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/NitishV2006/OneOrbit/internal/models"
	"github.com/NitishV2006/OneOrbit/internal/seed"
)

// CheckInBroadcaster pushes new check-ins to the owning user's open feed
// connections. Best effort; a nil broadcaster disables the push path.
type CheckInBroadcaster interface {
	BroadcastCheckIn(userID string, checkIn models.CheckIn)
}

var trioReplies = []string{
	"Great job!",
	"Keep it up!",
	"Awesome work!",
	"Let's crush this week!",
	"I finished my main task for today too.",
}

// TrioService manages the fixed accountability trio and its check-in feed.
// Member replies are simulated: each member posts a canned response on a
// staggered timer, re-reading the latest blob before appending so no
// interleaved check-in is lost.
type TrioService struct {
	data        *UserDataService
	broadcaster CheckInBroadcaster
	logger      *zap.Logger

	// replyDelay is the stagger between simulated member replies.
	replyDelay time.Duration
}

func NewTrioService(data *UserDataService, broadcaster CheckInBroadcaster, logger *zap.Logger) *TrioService {
	return &TrioService{
		data:        data,
		broadcaster: broadcaster,
		logger:      logger,
		replyDelay:  2 * time.Second,
	}
}

// SetReplyDelay tunes the simulated reply stagger. Used by tests.
func (s *TrioService) SetReplyDelay(d time.Duration) {
	s.replyDelay = d
}

// CreateTrio installs the fixed two-member trio. Idempotent: an existing
// trio is left alone.
func (s *TrioService) CreateTrio(ctx context.Context, userID string) (*models.UserData, error) {
	return s.data.Update(ctx, userID, func(data *models.UserData) error {
		if len(data.TrioMembers) == 0 {
			data.TrioMembers = seed.TrioMembers()
		}
		return nil
	})
}

// PostCheckIn appends the user's check-in and schedules one simulated reply
// per trio member.
func (s *TrioService) PostCheckIn(ctx context.Context, account *models.Account, message string) (*models.UserData, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrInvalidInput
	}

	checkIn := models.CheckIn{
		UserID:    account.ID,
		Username:  account.Username,
		AvatarURL: account.AvatarURL,
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	data, err := s.data.Update(ctx, account.ID, func(data *models.UserData) error {
		data.CheckIns = append(data.CheckIns, checkIn)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastCheckIn(account.ID, checkIn)
	}

	for i, member := range data.TrioMembers {
		member := member
		time.AfterFunc(time.Duration(i+1)*s.replyDelay, func() {
			s.simulateReply(account.ID, member)
		})
	}
	return data, nil
}

func (s *TrioService) simulateReply(userID string, member models.TrioMember) {
	reply := models.CheckIn{
		UserID:    member.ID,
		Username:  member.Username,
		AvatarURL: member.AvatarURL,
		Message:   trioReplies[rand.Intn(len(trioReplies))],
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	_, err := s.data.Update(context.Background(), userID, func(data *models.UserData) error {
		data.CheckIns = append(data.CheckIns, reply)
		return nil
	})
	if err != nil {
		s.logger.Error("simulated trio reply failed", zap.String("user_id", userID), zap.Error(err))
		return
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastCheckIn(userID, reply)
	}
}

type TrioActivityPoint struct {
	Day    string         `json:"day"`
	Counts map[string]int `json:"counts"`
}

// WeeklyActivity builds the last-7-days task chart: real counts for the
// user, simulated counts for trio members.
func (s *TrioService) WeeklyActivity(account *models.Account, data *models.UserData, now time.Time) []TrioActivityPoint {
	points := make([]TrioActivityPoint, 0, 7)
	for i := 6; i >= 0; i-- {
		day := now.UTC().AddDate(0, 0, -i)
		date := day.Format("2006-01-02")

		counts := map[string]int{
			account.Username: CompletedOn(data.Tasks, date),
		}
		if len(data.TrioMembers) > 0 {
			counts[data.TrioMembers[0].Username] = rand.Intn(4)
		}
		if len(data.TrioMembers) > 1 {
			counts[data.TrioMembers[1].Username] = rand.Intn(5)
		}

		points = append(points, TrioActivityPoint{Day: day.Format("Mon"), Counts: counts})
	}
	return points
}
