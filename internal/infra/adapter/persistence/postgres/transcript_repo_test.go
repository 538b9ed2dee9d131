package postgres_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"

	"podcast-digest/internal/domain/entity"
	"podcast-digest/internal/infra/adapter/persistence/postgres"
)

func TestTranscriptRepo_InsertSegments(t *testing.T) {
	t.Parallel()

	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	prep := mock.ExpectPrepare("INSERT INTO transcripts")
	prep.ExpectExec().
		WithArgs("ep01.txt", 0.0, 4.0, "hello", "").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	repo := postgres.NewTranscriptRepo(db)
	err := repo.InsertSegments(context.Background(), []*entity.Segment{
		{EpisodeID: "ep01.txt", Start: 0, End: 4, Text: "hello"},
	})
	if err != nil {
		t.Fatalf("InsertSegments err=%v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestTranscriptRepo_SearchText(t *testing.T) {
	t.Parallel()

	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	want := []*entity.Segment{
		{EpisodeID: "ep02.txt", Start: 10, End: 15, Text: "coral reefs", Themes: "nature"},
	}

	rows := sqlmock.NewRows([]string{"episode_id", "start_time", "end_time", "text", "themes"}).
		AddRow("ep02.txt", 10.0, 15.0, "coral reefs", "nature")

	mock.ExpectQuery("SELECT.*FROM transcripts.*ILIKE").
		WithArgs("reef").
		WillReturnRows(rows)

	repo := postgres.NewTranscriptRepo(db)
	got, err := repo.SearchText(context.Background(), "reef")
	if err != nil {
		t.Fatalf("SearchText err=%v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("SearchText mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestTranscriptRepo_ListEpisodes(t *testing.T) {
	t.Parallel()

	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("SELECT.*FROM transcripts.*GROUP BY episode_id").
		WillReturnRows(sqlmock.NewRows([]string{"episode_id", "count", "duration"}).
			AddRow("ep02.txt", int64(3), 42.0))

	repo := postgres.NewTranscriptRepo(db)
	got, err := repo.ListEpisodes(context.Background())
	if err != nil {
		t.Fatalf("ListEpisodes err=%v", err)
	}
	if len(got) != 1 || got[0].Duration != 42.0 {
		t.Fatalf("unexpected stats %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
