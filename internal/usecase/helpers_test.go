package usecase_test

import (
	"path/filepath"
	"time"

	"github.com/runoshun/blockary/internal/domain"
	"github.com/runoshun/blockary/internal/testutil"
)

var (
	nov12 = domain.Date{Year: 2025, Month: time.November, Day: 12}
	nov13 = domain.Date{Year: 2025, Month: time.November, Day: 13}
)

// testConfig returns two origins: Personal (own section) and Work (commits).
func testConfig() *domain.Config {
	cfg := domain.NewDefaultConfig()
	cfg.Origins["personal"] = domain.Origin{Key: "personal", Path: "/notes/personal", Name: "Personal", Section: "Plan"}
	cfg.Origins["work"] = domain.Origin{Key: "work", Path: "/notes/work", Name: "Work", Commit: true}
	return cfg
}

func newNote(origin, base, id string, blocks ...string) domain.DayPlan {
	src := domain.MarkdownSource{
		AbsPath: filepath.Join(base, filepath.FromSlash(id)),
		BaseDir: base,
		Section: domain.DefaultSection,
	}
	return domain.NewDayPlan(origin, src, blocks)
}

func newCalendarPlan(origin, uri string, day domain.Date, blocks ...domain.Block) domain.DayPlan {
	return domain.DayPlan{
		Origin: origin,
		Source: domain.CalendarSource{URI: uri},
		Blocks: blocks,
	}.WithDate(day)
}

func noonOf(day domain.Date) *testutil.MockClock {
	return &testutil.MockClock{NowTime: time.Date(day.Year, day.Month, day.Day, 12, 0, 0, 0, time.Local)}
}

func savedLines(repo *testutil.MockDayPlanRepository) map[string][]string {
	out := make(map[string][]string, len(repo.Saved))
	for _, p := range repo.Saved {
		out[p.Origin+":"+p.Source.Identifier()] = p.RenderBlocks()
	}
	return out
}
