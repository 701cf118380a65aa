package repository

import (
	"context"
	"time"

	"derbydesk/internal/domain/ticket"
	"derbydesk/internal/shared/biztime"
)

// DailyNumberGenerator issues ticket numbers of the form T-YYYYMMDD-NNNN,
// restarting the sequence each UTC day. Sequences survive restarts because
// they are derived from the rows already persisted for that day.
type DailyNumberGenerator struct {
	repo    ticket.TicketRepository
	nowFunc func() time.Time
}

func NewDailyNumberGenerator(repo ticket.TicketRepository) *DailyNumberGenerator {
	return &DailyNumberGenerator{
		repo:    repo,
		nowFunc: biztime.NowUTC,
	}
}

func (g *DailyNumberGenerator) Generate(ctx context.Context) (string, error) {
	now := g.nowFunc()
	seq, err := g.repo.NextSequenceForDate(ctx, now.Format("20060102"))
	if err != nil {
		return "", err
	}
	return ticket.FormatNumber(now, seq), nil
}
