package services

import (
	"context"
	"testing"

	"github.com/tbourn/go-slack-actions/internal/domain"
)

func TestSummary_NoHistory(t *testing.T) {
	svc := &StatsService{DB: newServiceDB(t), Registry: testRegistry(t)}

	got, err := svc.Summary(context.Background(), "U9")
	if err != nil {
		t.Fatalf("Summary error: %v", err)
	}
	if got != "Your stats:" {
		t.Fatalf("Summary = %q, want header only", got)
	}
}

func TestSummary_SentThenReceivedLines(t *testing.T) {
	db := newServiceDB(t)
	rows := []domain.ActionRecord{
		{ID: "r1", Action: "poke", ActorID: "U", TargetID: "X", Count: 3},
		{ID: "r2", Action: "poke", ActorID: "Y", TargetID: "U", Count: 2},
	}
	for _, r := range rows {
		if err := db.Create(&r).Error; err != nil {
			t.Fatalf("seed %s: %v", r.ID, err)
		}
	}

	svc := &StatsService{DB: db, Registry: testRegistry(t)}
	got, err := svc.Summary(context.Background(), "U")
	if err != nil {
		t.Fatalf("Summary error: %v", err)
	}

	want := "Your stats:\n" +
		"You have poked people 3 times\n" +
		"You have been poked 2 times"
	if got != want {
		t.Fatalf("Summary = %q, want %q", got, want)
	}
}

func TestSummary_SkipsUnregisteredKeys(t *testing.T) {
	db := newServiceDB(t)
	rows := []domain.ActionRecord{
		{ID: "r1", Action: "poke", ActorID: "U", TargetID: "X", Count: 1},
		{ID: "r2", Action: "retired-action", ActorID: "U", TargetID: "X", Count: 4},
	}
	for _, r := range rows {
		if err := db.Create(&r).Error; err != nil {
			t.Fatalf("seed %s: %v", r.ID, err)
		}
	}

	svc := &StatsService{DB: db, Registry: testRegistry(t)}
	got, err := svc.Summary(context.Background(), "U")
	if err != nil {
		t.Fatalf("Summary error: %v", err)
	}

	want := "Your stats:\nYou have poked people 1 times"
	if got != want {
		t.Fatalf("Summary = %q, want %q", got, want)
	}
}

func TestSummary_StorageErrorPropagates(t *testing.T) {
	// Fresh DB without migration: aggregate query hits a missing table.
	db := newServiceDB(t)
	if err := db.Migrator().DropTable(&domain.ActionRecord{}); err != nil {
		t.Fatalf("drop table: %v", err)
	}

	svc := &StatsService{DB: db, Registry: testRegistry(t)}
	if _, err := svc.Summary(context.Background(), "U"); err == nil {
		t.Fatalf("expected storage error")
	}
}
