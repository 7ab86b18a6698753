package services

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-slack-actions/internal/domain"
	"github.com/tbourn/go-slack-actions/internal/registry"
	"github.com/tbourn/go-slack-actions/internal/repo"
)

var svcDBSeq atomic.Int64

func newServiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svcdb%d?mode=memory&cache=shared", svcDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	r, err := registry.New([]registry.Definition{
		{
			Command:         "poke",
			Key:             "poke",
			SendTemplate:    "{} have poked people {} times",
			ReceiveTemplate: "{} have been poked {} times",
			MessageTemplates: []string{
				"{} pokes {}",
				"{} gives {} a good poke",
			},
		},
	})
	if err != nil {
		t.Fatalf("build registry: %v", err)
	}
	return r
}

type stubPoster struct {
	fn func(ctx context.Context, url, text string) error
}

func (s stubPoster) Post(ctx context.Context, url, text string) error {
	if s.fn != nil {
		return s.fn(ctx, url, text)
	}
	return nil
}

func TestPerform_UnknownCommand(t *testing.T) {
	// DB deliberately nil: a registry miss must short-circuit before any
	// ledger access.
	svc := &ActionService{Registry: testRegistry(t)}
	if _, err := svc.Perform(context.Background(), "tickle", "U1", "<@U2|bob>"); !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("err = %v, want ErrUnknownCommand", err)
	}
}

func TestPerform_NoTarget(t *testing.T) {
	svc := &ActionService{Registry: testRegistry(t)}
	for _, text := range []string{"", "no mention here", "@here only", "<@|empty>"} {
		if _, err := svc.Perform(context.Background(), "poke", "U1", text); !errors.Is(err, ErrNoTarget) {
			t.Fatalf("text %q: err = %v, want ErrNoTarget", text, err)
		}
	}
}

func TestPerform_SelfTarget(t *testing.T) {
	svc := &ActionService{Registry: testRegistry(t)}
	if _, err := svc.Perform(context.Background(), "poke", "U1", "<@U1|me>"); !errors.Is(err, ErrSelfTarget) {
		t.Fatalf("err = %v, want ErrSelfTarget", err)
	}
}

func TestPerform_RecordsAndRenders(t *testing.T) {
	db := newServiceDB(t)
	svc := &ActionService{
		DB:       db,
		Registry: testRegistry(t),
		Intn:     func(n int) int { return 1 }, // pin the second template
	}

	res, err := svc.Perform(context.Background(), "poke", "U1", "hey <@U2|user2> hi")
	if err != nil {
		t.Fatalf("Perform error: %v", err)
	}
	if res.Key != "poke" || res.ActorID != "U1" || res.TargetID != "U2" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Count != 1 {
		t.Fatalf("count = %d, want 1", res.Count)
	}
	if res.Message != "<@U1> gives <@U2> a good poke" {
		t.Fatalf("message = %q", res.Message)
	}

	// Same triple again: still one row, count 2.
	res, err = svc.Perform(context.Background(), "poke", "U1", "<@U2|user2>")
	if err != nil {
		t.Fatalf("second Perform error: %v", err)
	}
	if res.Count != 2 {
		t.Fatalf("count = %d, want 2", res.Count)
	}
	var rows int64
	if err := db.Model(&domain.ActionRecord{}).Count(&rows).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if rows != 1 {
		t.Fatalf("rows = %d, want 1", rows)
	}
}

func TestPerform_DefaultRandSource(t *testing.T) {
	db := newServiceDB(t)
	svc := &ActionService{DB: db, Registry: testRegistry(t)} // Intn nil

	res, err := svc.Perform(context.Background(), "poke", "U1", "<@U2|user2>")
	if err != nil {
		t.Fatalf("Perform error: %v", err)
	}
	want := map[string]bool{
		"<@U1> pokes <@U2>":             true,
		"<@U1> gives <@U2> a good poke": true,
	}
	if !want[res.Message] {
		t.Fatalf("message %q not produced by any template", res.Message)
	}
}

func TestAnnounce_DeliversInBackground(t *testing.T) {
	delivered := make(chan [2]string, 1)
	svc := &ActionService{
		Notifier: stubPoster{fn: func(ctx context.Context, url, text string) error {
			delivered <- [2]string{url, text}
			return nil
		}},
	}

	svc.Announce("https://hooks.example/abc", "<@U1> pokes <@U2>")

	select {
	case got := <-delivered:
		if got[0] != "https://hooks.example/abc" || got[1] != "<@U1> pokes <@U2>" {
			t.Fatalf("unexpected delivery: %v", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Announce never called the notifier")
	}
}

func TestAnnounce_SwallowsDeliveryError(t *testing.T) {
	done := make(chan struct{}, 1)
	svc := &ActionService{
		Notifier: stubPoster{fn: func(ctx context.Context, url, text string) error {
			done <- struct{}{}
			return errors.New("boom")
		}},
	}

	// Must not panic or surface anything.
	svc.Announce("https://hooks.example/abc", "msg")

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Announce never called the notifier")
	}
}
