package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/reuniteapp/reunite-api/databases"
	"github.com/reuniteapp/reunite-api/models"
)

// maxAgeGap is the widest age difference two reports can have and still match
const maxAgeGap = 10

// Matcher periodically compares open missing person reports against active
// found person reports and notifies reporters of possible matches
type Matcher struct {
	cron *cron.Cron
	MDB  databases.MissingPersonDatabase
	FDB  databases.FoundPersonDatabase
	NDB  databases.NotificationDatabase
}

// New creates a matcher with an hourly schedule
func New(mdb databases.MissingPersonDatabase, fdb databases.FoundPersonDatabase, ndb databases.NotificationDatabase) *Matcher {
	return &Matcher{
		cron: cron.New(cron.WithLocation(time.UTC)),
		MDB:  mdb,
		FDB:  fdb,
		NDB:  ndb,
	}
}

// Start begins the matcher with its registered jobs
func (m *Matcher) Start() {
	_, err := m.cron.AddFunc("0 * * * *", m.runMatchJob)
	if err != nil {
		zap.S().Errorw("failed to register match job", "error", err)
	}

	m.cron.Start()
	zap.S().Info("Report matcher started")
}

// Stop gracefully stops the matcher
func (m *Matcher) Stop() {
	ctx := m.cron.Stop()
	<-ctx.Done()
	zap.S().Info("Report matcher stopped")
}

func (m *Matcher) runMatchJob() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := m.MatchOnce(ctx); err != nil {
		zap.S().Errorw("match job failed", "error", err)
	}
}

// MatchOnce runs one full pass over open reports. Each missing/found pair
// produces at most one notification, ever, so reruns stay quiet.
func (m *Matcher) MatchOnce(ctx context.Context) error {
	missing, err := m.MDB.Find(ctx, bson.M{"status": models.MissingStatus})
	if err != nil {
		return fmt.Errorf("failed to load missing person reports: %w", err)
	}
	found, err := m.FDB.Find(ctx, bson.M{"status": models.FoundStatusActive})
	if err != nil {
		return fmt.Errorf("failed to load found person reports: %w", err)
	}

	matched := 0
	for _, mp := range missing {
		for _, fp := range found {
			if !candidateMatch(mp, fp) {
				continue
			}

			// Dedupe per (missing, found) pair. The same found report may
			// legitimately match several of a user's missing reports.
			already, err := m.NDB.CountDocuments(ctx, bson.M{
				"userId":    mp.ReportedBy,
				"type":      models.NotificationTypeMatch,
				"relatedId": fp.ID,
				"sourceId":  mp.ID,
			})
			if err != nil {
				zap.S().Errorw("failed to check for existing match notification",
					"missingId", mp.ID.Hex(), "foundId", fp.ID.Hex(), "error", err)
				continue
			}
			if already > 0 {
				continue
			}

			now := primitive.NewDateTimeFromTime(time.Now())
			notification := models.Notification{
				ID:        primitive.NewObjectID(),
				UserID:    mp.ReportedBy,
				Message:   fmt.Sprintf("A found person report near %s may match your report for %s.", fp.Location, mp.Name),
				Type:      models.NotificationTypeMatch,
				Read:      false,
				RelatedID: fp.ID,
				OnModel:   models.RelatedFoundPerson,
				SourceID:  mp.ID,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if _, err := m.NDB.InsertOne(ctx, notification); err != nil {
				zap.S().Errorw("failed to create match notification",
					"missingId", mp.ID.Hex(), "foundId", fp.ID.Hex(), "error", err)
				continue
			}
			matched++
		}
	}

	zap.S().Infow("Match pass complete",
		"missingChecked", len(missing),
		"foundChecked", len(found),
		"matchesEmitted", matched,
	)
	return nil
}

// candidateMatch applies the coarse heuristics a human reviewer would use
// as a first filter. False positives are acceptable, the notification only
// asks the reporter to take a look.
func candidateMatch(mp models.MissingPerson, fp models.FoundPerson) bool {
	if !genderCompatible(mp.Gender, fp.Gender) {
		return false
	}
	// A person cannot be found before they went missing
	if fp.FoundDate < mp.LastSeen {
		return false
	}
	if !locationOverlap(mp.Location, fp.Location) {
		return false
	}
	if mp.Age > 0 && fp.Age > 0 {
		diff := mp.Age - fp.Age
		if diff < 0 {
			diff = -diff
		}
		if diff > maxAgeGap {
			return false
		}
	}
	return true
}

func genderCompatible(a, b string) bool {
	if a == "" || b == "" || a == "Unknown" || b == "Unknown" {
		return true
	}
	return a == b
}

func locationOverlap(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
