package changes

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/interfaces"
	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/model"
)

// fakeStore is an in-memory SessionStore for tests.
type fakeStore struct {
	backups map[string]*model.Backup
	getErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{backups: make(map[string]*model.Backup)}
}

func (s *fakeStore) Get(_ context.Context, id string) (*model.Backup, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.backups[id], nil
}

func (s *fakeStore) Set(_ context.Context, id string, b *model.Backup) error {
	s.backups[id] = b
	return nil
}

func (s *fakeStore) Remove(_ context.Context, id string) error {
	delete(s.backups, id)
	return nil
}

func (s *fakeStore) Close() error { return nil }

// fakeClient records Save calls and can be told to fail.
type fakeClient struct {
	saveErr   error
	saved     [][]model.Change
	lastState *model.SessionResults
}

func (c *fakeClient) Fetch(context.Context, string) (*model.SessionResults, error) {
	return baseResults(), nil
}

func (c *fakeClient) Save(_ context.Context, _ string, results *model.SessionResults, changes []model.Change) error {
	if c.saveErr != nil {
		return c.saveErr
	}
	c.saved = append(c.saved, changes)
	c.lastState = results
	return nil
}

func newTestTracker(store interfaces.SessionStore, client interfaces.ResultsClient) *Tracker {
	return NewTracker("sess-1", store, client, interfaces.NewTestLogger(false), nil)
}

func TestTrackChangeStampsAndApplies(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	tr := newTestTracker(store, &fakeClient{})
	if err := tr.LoadSession(ctx, baseResults()); err != nil {
		t.Fatal(err)
	}

	c := tr.TrackChange(ctx, model.Change{
		Type:     model.ChangeBackgroundColor,
		ClipName: "intro",
		Path:     "timeline.clips[intro].backgroundColor",
		OldValue: "#1a1625",
		NewValue: "#000000",
	})
	if c.ID == "" || c.Timestamp.IsZero() {
		t.Error("TrackChange must stamp id and timestamp")
	}
	if got := tr.Results().Timeline.ClipByName("intro").BackgroundColor; got != "#000000" {
		t.Errorf("working state not updated, backgroundColor = %q", got)
	}
	if !tr.HasUnsaved() {
		t.Error("stack should hold the change")
	}

	// Every stack mutation refreshes the session-keyed backup.
	b := store.backups["sess-1"]
	if b == nil || len(b.ChangeStack) != 1 {
		t.Fatalf("backup not written, got %+v", b)
	}
}

func TestCompact(t *testing.T) {
	stack := []model.Change{
		{Path: "a", NewValue: 1},
		{Path: "a", NewValue: 2},
		{Path: "b", NewValue: 3},
	}
	got := Compact(stack)
	if len(got) != 2 {
		t.Fatalf("Compact returned %d changes, want 2", len(got))
	}
	if got[0].Path != "a" || got[0].NewValue != 2 {
		t.Errorf("first entry = %+v, want path a value 2", got[0])
	}
	if got[1].Path != "b" || got[1].NewValue != 3 {
		t.Errorf("second entry = %+v, want path b value 3", got[1])
	}
}

func TestCompactStampsTextDelta(t *testing.T) {
	stack := []model.Change{
		{Path: "narrations[intro].text", OldValue: "hello world", NewValue: "hello brave world"},
		{Path: "narrations[intro].text", OldValue: "hello brave world", NewValue: "hello brave new world"},
		{Path: "timeline.clips[intro].backgroundColor", OldValue: "#111111", NewValue: "#222222"},
	}
	out := Compact(stack)
	if len(out) != 2 {
		t.Fatalf("Compact returned %d changes, want 2", len(out))
	}

	// The delta spans the first old value to the final new value.
	dmp := diffmatchpatch.New()
	diffs, err := dmp.DiffFromDelta("hello world", out[0].Delta)
	if err != nil {
		t.Fatalf("delta %q does not decode: %v", out[0].Delta, err)
	}
	if got := dmp.DiffText2(diffs); got != "hello brave new world" {
		t.Errorf("delta reconstructs %q, want the final text", got)
	}
	if out[1].Delta == "" {
		t.Error("single string edit should carry a delta")
	}
}

func TestSaveSuccessClearsStackAndBackup(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	client := &fakeClient{}
	tr := newTestTracker(store, client)
	if err := tr.LoadSession(ctx, baseResults()); err != nil {
		t.Fatal(err)
	}

	tr.TrackChange(ctx, model.Change{Path: "timeline.clips[intro].backgroundColor", NewValue: "#111111"})
	tr.TrackChange(ctx, model.Change{Path: "timeline.clips[intro].backgroundColor", NewValue: "#222222"})
	tr.TrackChange(ctx, model.Change{Path: "aspectRatio", NewValue: "9:16"})

	if err := tr.Save(ctx); err != nil {
		t.Fatal(err)
	}
	if tr.HasUnsaved() {
		t.Error("stack should be cleared after successful save")
	}
	if store.backups["sess-1"] != nil {
		t.Error("backup should be removed after successful save")
	}
	if len(client.saved) != 1 || len(client.saved[0]) != 2 {
		t.Fatalf("expected one save with 2 compacted changes, got %+v", client.saved)
	}
}

func TestSaveFailureKeepsStack(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	client := &fakeClient{saveErr: errors.New("persistence down")}
	tr := newTestTracker(store, client)
	if err := tr.LoadSession(ctx, baseResults()); err != nil {
		t.Fatal(err)
	}

	tr.TrackChange(ctx, model.Change{Path: "aspectRatio", NewValue: "1:1"})
	if err := tr.Save(ctx); err == nil {
		t.Fatal("expected save error to propagate")
	}
	if !tr.HasUnsaved() {
		t.Error("failed save must leave the stack intact for retry")
	}
	if store.backups["sess-1"] == nil {
		t.Error("failed save must leave the backup in place")
	}

	// Retry succeeds with the same payload.
	client.saveErr = nil
	if err := tr.Save(ctx); err != nil {
		t.Fatal(err)
	}
	if tr.HasUnsaved() {
		t.Error("retried save should clear the stack")
	}
}

func TestLoadSessionMergesBackupOntoFreshData(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	staleResults := baseResults()
	staleResults.Timeline.Clips[0].BackgroundColor = "#stale"
	store.backups["sess-1"] = &model.Backup{
		Results: staleResults,
		ChangeStack: []model.Change{
			{ID: "c1", Path: "timeline.clips[intro].backgroundColor", NewValue: "#edited"},
		},
		Timestamp: time.Now().Add(-time.Hour),
	}

	tr := newTestTracker(store, &fakeClient{})
	fresh := baseResults()
	if err := tr.LoadSession(ctx, fresh); err != nil {
		t.Fatal(err)
	}

	// The delta replays onto the fresh fetch, not the cached copy.
	if got := tr.Results().Timeline.ClipByName("intro").BackgroundColor; got != "#edited" {
		t.Errorf("merge result backgroundColor = %q, want #edited", got)
	}
	if !tr.HasUnsaved() {
		t.Error("merged stack must remain open as unsaved work")
	}

	// A refetch of the same session must not merge again.
	refetch := baseResults()
	if err := tr.LoadSession(ctx, refetch); err != nil {
		t.Fatal(err)
	}
	if got := tr.Results(); got != refetch {
		t.Error("second load should adopt the refetched state without re-merging")
	}
}

func TestLoadSessionDiscardsStaleBackup(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.backups["sess-1"] = &model.Backup{
		Results:     baseResults(),
		ChangeStack: []model.Change{{Path: "aspectRatio", NewValue: "4:3"}},
		Timestamp:   time.Now().Add(-25 * time.Hour),
	}

	tr := newTestTracker(store, &fakeClient{})
	if err := tr.LoadSession(ctx, baseResults()); err != nil {
		t.Fatal(err)
	}
	if tr.HasUnsaved() {
		t.Error("stale backup must not be merged")
	}
	if store.backups["sess-1"] != nil {
		t.Error("stale backup must be discarded")
	}
}

func TestLoadSessionSurvivesBrokenStore(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.getErr = errors.New("disk trouble")

	tr := newTestTracker(store, &fakeClient{})
	fresh := baseResults()
	if err := tr.LoadSession(ctx, fresh); err != nil {
		t.Fatalf("backup read failures must not block loading: %v", err)
	}
	if tr.Results() != fresh {
		t.Error("fresh data should be adopted despite the store error")
	}
}

func TestMergeIdempotenceEndToEnd(t *testing.T) {
	logger := interfaces.NewTestLogger(false)
	stack := []model.Change{
		{Path: "timeline.clips[intro].backgroundColor", NewValue: "#0a0a0a"},
		{Path: "timeline.clips[outro].backgroundColor", NewValue: "#fafafa"},
		{Path: "aspectRatio", NewValue: "16:9"},
	}
	merged := Replay(baseResults(), stack, logger)
	again := Replay(merged, stack, logger)
	if !reflect.DeepEqual(merged, again) {
		t.Error("each path already holds its final value; re-replay must change nothing")
	}
}
