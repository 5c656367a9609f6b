package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/xvierd/prodvana-cli/internal/domain"
	"github.com/xvierd/prodvana-cli/internal/ports"
)

func newTestStorage(t *testing.T) ports.Storage {
	t.Helper()
	storage, err := NewMemory()
	if err != nil {
		t.Fatalf("NewMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = storage.Close() })
	return storage
}

func saveTask(t *testing.T, repo ports.TaskRepository, title, hhmm string) *domain.Task {
	t.Helper()
	ctx := context.Background()
	task, err := domain.NewTask(title, hhmm)
	if err != nil {
		t.Fatal(err)
	}
	task.Seq, err = repo.NextSeq(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if err := repo.Save(ctx, task); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	return task
}

func TestNew_EmptyPathIsMemory(t *testing.T) {
	storage, err := New("")
	if err != nil {
		t.Fatalf("New(\"\") error = %v", err)
	}
	defer func() { _ = storage.Close() }()

	if _, err := storage.Tasks().FindAll(context.Background()); err != nil {
		t.Errorf("FindAll() error = %v", err)
	}
}

func TestNew_FilePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prodvana.db")
	ctx := context.Background()

	first, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	saveTask(t, first.Tasks(), "Persist me", "10:00")
	_ = first.Close()

	second, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = second.Close() }()

	tasks, err := second.Tasks().FindAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 1 || tasks[0].Title != "Persist me" {
		t.Errorf("tasks = %+v", tasks)
	}
}

func TestNew_FileSetsBusyTimeout(t *testing.T) {
	store, err := New(filepath.Join(t.TempDir(), "prodvana.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	db := store.(*sqliteStorage).db
	db.SetMaxOpenConns(2)
	conns := make([]*sql.Conn, 2)
	for i := range conns {
		c, err := db.Conn(context.Background())
		if err != nil {
			t.Fatalf("Conn() error = %v", err)
		}
		defer c.Close()
		conns[i] = c
	}

	for i, c := range conns {
		var timeout int
		if err := c.QueryRowContext(context.Background(), "PRAGMA busy_timeout").Scan(&timeout); err != nil {
			t.Fatalf("PRAGMA busy_timeout error = %v", err)
		}
		if timeout != busyTimeoutMillis {
			t.Errorf("connection %d busy_timeout = %d, want %d", i, timeout, busyTimeoutMillis)
		}
	}
}

func TestFileDSN(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/tmp/p.db", "/tmp/p.db?_pragma=busy_timeout(5000)"},
		{"file:/tmp/p.db?mode=rwc", "file:/tmp/p.db?mode=rwc&_pragma=busy_timeout(5000)"},
	}
	for _, tt := range tests {
		if got := fileDSN(tt.path); got != tt.want {
			t.Errorf("fileDSN(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestTaskRepository_SaveAndFind(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()
	repo := storage.Tasks()

	t.Run("find by id", func(t *testing.T) {
		task := saveTask(t, repo, "Find Me", "07:45")
		found, err := repo.FindByID(ctx, task.ID)
		if err != nil {
			t.Fatalf("FindByID() error = %v", err)
		}
		if found.Title != task.Title || found.Time != task.Time || found.Priority != domain.PriorityMedium {
			t.Errorf("found = %+v, want %+v", found, task)
		}
		if found.Seq != task.Seq {
			t.Errorf("Seq = %d, want %d", found.Seq, task.Seq)
		}
	})

	t.Run("find non-existent", func(t *testing.T) {
		if _, err := repo.FindByID(ctx, "missing"); !errors.Is(err, domain.ErrTaskNotFound) {
			t.Errorf("FindByID() error = %v, want %v", err, domain.ErrTaskNotFound)
		}
	})

	t.Run("duplicate id", func(t *testing.T) {
		task := saveTask(t, repo, "Once", "08:00")
		task.Seq++
		if err := repo.Save(ctx, task); err == nil {
			t.Error("Save() of duplicate id should fail")
		}
	})
}

func TestTaskRepository_NextSeq(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()
	repo := storage.Tasks()

	seq, err := repo.NextSeq(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if seq != 1 {
		t.Errorf("NextSeq() on empty = %d, want 1", seq)
	}

	saveTask(t, repo, "a", "01:00")
	saveTask(t, repo, "b", "02:00")
	if seq, _ := repo.NextSeq(ctx); seq != 3 {
		t.Errorf("NextSeq() = %d, want 3", seq)
	}
}

func TestTaskRepository_UpdateAndDelete(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()
	repo := storage.Tasks()

	task := saveTask(t, repo, "Draft", "09:00")
	task.Toggle()
	if err := task.Edit("Final", "16:30"); err != nil {
		t.Fatal(err)
	}
	if err := task.SetPriority(domain.PriorityHigh); err != nil {
		t.Fatal(err)
	}
	if err := repo.Update(ctx, task); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	found, _ := repo.FindByID(ctx, task.ID)
	if !found.Completed || found.Title != "Final" || found.Time.String() != "16:30" || found.Priority != domain.PriorityHigh {
		t.Errorf("after Update: %+v", found)
	}

	if err := repo.Delete(ctx, task.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := repo.Delete(ctx, task.ID); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Errorf("second Delete() error = %v", err)
	}

	ghost := *task
	ghost.ID = "ghost"
	if err := repo.Update(ctx, &ghost); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Errorf("Update() of missing task error = %v", err)
	}
}

func TestTaskRepository_FindByTitle(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()
	repo := storage.Tasks()

	saveTask(t, repo, "Write report", "09:00")
	saveTask(t, repo, "Review pull request", "10:00")
	saveTask(t, repo, "Lunch", "12:00")

	found, err := repo.FindByTitle(ctx, "report")
	if err != nil {
		t.Fatal(err)
	}
	if len(found) != 1 || found[0].Title != "Write report" {
		t.Errorf("FindByTitle(report) = %v", titles(found))
	}

	found, _ = repo.FindByTitle(ctx, "lnc")
	if len(found) != 1 || found[0].Title != "Lunch" {
		t.Errorf("FindByTitle(lnc) = %v", titles(found))
	}

	none, _ := repo.FindByTitle(ctx, "zzz")
	if len(none) != 0 {
		t.Errorf("FindByTitle(zzz) = %v", titles(none))
	}

	all, _ := repo.FindByTitle(ctx, "  ")
	if len(all) != 3 {
		t.Errorf("FindByTitle(blank) returned %d tasks, want 3", len(all))
	}
}

func titles(tasks []*domain.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	return out
}

func TestSessionRepository_DailyStats(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()
	repo := storage.Sessions()

	now := time.Date(2024, 5, 1, 15, 0, 0, 0, time.Local)
	records := []domain.SessionRecord{
		{ID: "1", Owner: "ana", Game: domain.GameFarm, Duration: 25, Outcome: domain.OutcomeFinished, Coins: 50, FocusSeconds: 25 * 60, EndedAt: now},
		{ID: "2", Owner: "ana", Game: domain.GameFishing, Duration: 15, Outcome: domain.OutcomeUnclaimed, FocusSeconds: 15 * 60, EndedAt: now.Add(-time.Hour)},
		{ID: "3", Owner: "ana", Game: domain.GameFarm, Duration: 30, Outcome: domain.OutcomeAbandoned, FocusSeconds: 90, EndedAt: now.Add(-2 * time.Hour)},
		{ID: "4", Owner: "ana", Game: domain.GameFarm, Duration: 60, Outcome: domain.OutcomeFinished, Coins: 120, FocusSeconds: 3600, EndedAt: now.AddDate(0, 0, -1)},
		{ID: "5", Owner: "bob", Game: domain.GameFarm, Duration: 60, Outcome: domain.OutcomeFinished, Coins: 120, FocusSeconds: 3600, EndedAt: now},
	}
	for i := range records {
		if err := repo.Save(ctx, &records[i]); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	stats, err := repo.GetDailyStats(ctx, "ana", now)
	if err != nil {
		t.Fatalf("GetDailyStats() error = %v", err)
	}
	if stats.SessionsFinished != 1 || stats.SessionsUnclaimed != 1 || stats.SessionsAbandoned != 1 {
		t.Errorf("counts = %+v", stats)
	}
	if stats.FocusMinutes != 41 {
		t.Errorf("FocusMinutes = %d, want 41", stats.FocusMinutes)
	}
	if stats.CoinsEarned != 50 {
		t.Errorf("CoinsEarned = %d, want 50", stats.CoinsEarned)
	}

	recent, err := repo.FindRecent(ctx, "ana", now.Add(-90*time.Minute))
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 2 || recent[0].ID != "1" || recent[1].Outcome != domain.OutcomeUnclaimed {
		t.Errorf("FindRecent() = %+v", recent)
	}
	if !recent[0].EndedAt.Equal(now) {
		t.Errorf("EndedAt = %v, want %v", recent[0].EndedAt, now)
	}
}

func TestWalletRepository(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()
	repo := storage.Wallets()

	if _, err := repo.Get(ctx, "ana"); !errors.Is(err, domain.ErrWalletNotFound) {
		t.Fatalf("Get() error = %v, want %v", err, domain.ErrWalletNotFound)
	}

	w := domain.NewWallet(50)
	if err := repo.Save(ctx, "ana", &w); err != nil {
		t.Fatal(err)
	}
	w.Earn(150)
	if err := repo.Save(ctx, "ana", &w); err != nil {
		t.Fatalf("second Save() error = %v", err)
	}

	got, err := repo.Get(ctx, "ana")
	if err != nil {
		t.Fatal(err)
	}
	if *got != w {
		t.Errorf("Get() = %+v, want %+v", *got, w)
	}
}
