package service

import (
	"context"
	"testing"
	"time"

	"github.com/hunty/huntcore/internal/hunt"
	apperrors "github.com/hunty/huntcore/internal/platform/errors"
)

func TestRegisterPlayer(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	h := activeHunt(t, svc)
	progress, err := svc.RegisterPlayer(ctx, h.ID, "GPLAYER")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if progress.HuntID != h.ID || progress.Player != "GPLAYER" {
		t.Fatalf("unexpected progress identity %d/%s", progress.HuntID, progress.Player)
	}
	if !progress.StartedAt.Equal(testNow) {
		t.Fatalf("expected started at %v, got %v", testNow, progress.StartedAt)
	}
}

func TestRegisterPlayerRequiresActiveHunt(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	_, err := svc.RegisterPlayer(ctx, 99, "GPLAYER")
	wantCode(t, err, apperrors.CodeHuntNotFound)

	draft := createDraft(t, svc)
	_, err = svc.RegisterPlayer(ctx, draft.ID, "GPLAYER")
	wantCode(t, err, apperrors.CodeHuntNotActive)
}

func TestRegisterPlayerExpiredHunt(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	h, err := svc.CreateHunt(ctx, hunt.CreateHuntInput{
		Creator: "GCREATOR",
		Title:   "Timed Hunt",
		EndTime: testNow.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("create hunt: %v", err)
	}
	addClue(t, svc, h.ID, "hash-1", 10, true)
	if _, err := svc.ActivateHunt(ctx, h.ID, "GCREATOR"); err != nil {
		t.Fatalf("activate: %v", err)
	}

	// Move past the end time; the hunt stays in active status but stops
	// accepting player actions.
	later := testNow.Add(2 * time.Hour)
	svc.clock = func() time.Time { return later }

	_, err = svc.RegisterPlayer(ctx, h.ID, "GPLAYER")
	wantCode(t, err, apperrors.CodeHuntNotActive)
}

func TestRegisterPlayerDuplicate(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	h := activeHunt(t, svc)
	if _, err := svc.RegisterPlayer(ctx, h.ID, "GPLAYER"); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := svc.RegisterPlayer(ctx, h.ID, "GPLAYER")
	wantCode(t, err, apperrors.CodePlayerAlreadyRegistered)

	// The original progress record survives the rejected replay.
	progress, err := svc.GetProgress(ctx, h.ID, "GPLAYER")
	if err != nil {
		t.Fatalf("get progress: %v", err)
	}
	if !progress.StartedAt.Equal(testNow) {
		t.Fatalf("duplicate registration touched progress: %+v", progress)
	}
}

func TestSubmitAnswer(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	h := createDraft(t, svc)
	addClue(t, svc, h.ID, "hash-1", 50, true)
	addClue(t, svc, h.ID, "hash-2", 25, true)
	if _, err := svc.ActivateHunt(ctx, h.ID, "GCREATOR"); err != nil {
		t.Fatalf("activate: %v", err)
	}
	if _, err := svc.RegisterPlayer(ctx, h.ID, "GPLAYER"); err != nil {
		t.Fatalf("register: %v", err)
	}

	progress, err := svc.SubmitAnswer(ctx, h.ID, "GPLAYER", 1, "hash-1")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if progress.TotalScore != 50 {
		t.Fatalf("expected score 50, got %d", progress.TotalScore)
	}
	if progress.IsCompleted {
		t.Fatal("run completed with a required clue outstanding")
	}

	progress, err = svc.SubmitAnswer(ctx, h.ID, "GPLAYER", 2, "hash-2")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !progress.IsCompleted {
		t.Fatal("expected run completed after last required clue")
	}
	if !progress.CompletedAt.Equal(testNow) {
		t.Fatalf("expected completed at %v, got %v", testNow, progress.CompletedAt)
	}
	if progress.TotalScore != 75 {
		t.Fatalf("expected score 75, got %d", progress.TotalScore)
	}
}

func TestSubmitAnswerCheckOrder(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	h := activeHunt(t, svc)

	// Registration is checked before clue existence.
	_, err := svc.SubmitAnswer(ctx, h.ID, "GPLAYER", 99, "hash")
	wantCode(t, err, apperrors.CodePlayerNotRegistered)

	if _, err := svc.RegisterPlayer(ctx, h.ID, "GPLAYER"); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err = svc.SubmitAnswer(ctx, h.ID, "GPLAYER", 99, "hash")
	wantCode(t, err, apperrors.CodeClueNotFound)

	// Wrong answer leaves progress untouched.
	_, err = svc.SubmitAnswer(ctx, h.ID, "GPLAYER", 1, "wrong-hash")
	wantCode(t, err, apperrors.CodeClueInvalidAnswer)

	progress, err := svc.GetProgress(ctx, h.ID, "GPLAYER")
	if err != nil {
		t.Fatalf("get progress: %v", err)
	}
	if progress.TotalScore != 0 || len(progress.CompletedClues) != 0 {
		t.Fatalf("wrong answer mutated progress: %+v", progress)
	}

	if _, err := svc.SubmitAnswer(ctx, h.ID, "GPLAYER", 1, "hash-1"); err != nil {
		t.Fatalf("submit: %v", err)
	}

	// Replaying a solved clue is rejected before the answer check.
	_, err = svc.SubmitAnswer(ctx, h.ID, "GPLAYER", 1, "wrong-hash")
	wantCode(t, err, apperrors.CodeClueAlreadyCompleted)
	_, err = svc.SubmitAnswer(ctx, h.ID, "GPLAYER", 1, "hash-1")
	wantCode(t, err, apperrors.CodeClueAlreadyCompleted)
}

func TestSubmitAnswerOptionalCluesOnly(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	h := createDraft(t, svc)
	addClue(t, svc, h.ID, "hash-1", 10, false)
	addClue(t, svc, h.ID, "hash-2", 20, false)
	if _, err := svc.ActivateHunt(ctx, h.ID, "GCREATOR"); err != nil {
		t.Fatalf("activate: %v", err)
	}
	if _, err := svc.RegisterPlayer(ctx, h.ID, "GPLAYER"); err != nil {
		t.Fatalf("register: %v", err)
	}

	// With no required clues, finishing means solving every clue.
	progress, err := svc.SubmitAnswer(ctx, h.ID, "GPLAYER", 1, "hash-1")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if progress.IsCompleted {
		t.Fatal("run completed with clues outstanding")
	}

	progress, err = svc.SubmitAnswer(ctx, h.ID, "GPLAYER", 2, "hash-2")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !progress.IsCompleted {
		t.Fatal("expected run completed after every clue")
	}
}

func TestSubmitAnswerOptionalAfterCompletion(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	h := createDraft(t, svc)
	addClue(t, svc, h.ID, "hash-1", 50, true)
	addClue(t, svc, h.ID, "hash-2", 25, false)
	if _, err := svc.ActivateHunt(ctx, h.ID, "GCREATOR"); err != nil {
		t.Fatalf("activate: %v", err)
	}
	if _, err := svc.RegisterPlayer(ctx, h.ID, "GPLAYER"); err != nil {
		t.Fatalf("register: %v", err)
	}

	progress, err := svc.SubmitAnswer(ctx, h.ID, "GPLAYER", 1, "hash-1")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !progress.IsCompleted {
		t.Fatal("expected run completed after the required clue")
	}

	// Optional clues still score after the run is complete.
	progress, err = svc.SubmitAnswer(ctx, h.ID, "GPLAYER", 2, "hash-2")
	if err != nil {
		t.Fatalf("submit optional: %v", err)
	}
	if progress.TotalScore != 75 {
		t.Fatalf("expected score 75, got %d", progress.TotalScore)
	}
	if !progress.IsCompleted {
		t.Fatal("completion flag must survive later submissions")
	}
}
