package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/flipdirmatze/ad-video-generator/models"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is bumped whenever schema.sql changes incompatibly.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database was created by a different schema version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// SQLiteStore keeps data in a local SQLite file. JSON columns hold the
// list-valued fields that Supabase stores as arrays and jsonb.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens or creates the database at path and ensures the schema exists.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	s := &SQLiteStore{db: db, path: path}
	if err := s.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStore) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin schema tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
			return fmt.Errorf("record schema version: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit schema: %w", err)
		}
		return nil
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database %s has version %d, expected %d", ErrSchemaMismatch, s.path, version, schemaVersion)
	}
	return nil
}

const videoColumns = "id, user_id, name, tags_json, url, path, duration, created_at, updated_at"

func (s *SQLiteStore) ListVideos(ctx context.Context, userID string) ([]models.TaggedVideo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+videoColumns+` FROM videos WHERE user_id = ? ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	defer rows.Close()

	videos := []models.TaggedVideo{}
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan video: %w", err)
		}
		videos = append(videos, *v)
	}
	return videos, rows.Err()
}

func (s *SQLiteStore) TaggedVideos(ctx context.Context, userID string) ([]models.TaggedVideo, error) {
	videos, err := s.ListVideos(ctx, userID)
	if err != nil {
		return nil, err
	}
	return onlyTagged(videos), nil
}

func (s *SQLiteStore) GetVideo(ctx context.Context, userID, videoID string) (*models.TaggedVideo, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+videoColumns+` FROM videos WHERE id = ? AND user_id = ?`, videoID, userID)
	v, err := scanVideo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get video: %w", err)
	}
	return v, nil
}

func (s *SQLiteStore) CreateVideo(ctx context.Context, v models.TaggedVideo) (*models.TaggedVideo, error) {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	v.CreatedAt = now()
	v.UpdatedAt = v.CreatedAt

	tags, err := marshalJSON(nonNilTags(v.Tags))
	if err != nil {
		return nil, err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO videos (`+videoColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.ID, v.UserID, v.Name, tags, v.URL,
		nullableString(v.Path), nullableFloat(v.Duration),
		formatTime(v.CreatedAt), formatTime(v.UpdatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("insert video: %w", err)
	}
	return s.GetVideo(ctx, v.UserID, v.ID)
}

func (s *SQLiteStore) UpdateVideoTags(ctx context.Context, userID, videoID string, tags []string) (*models.TaggedVideo, error) {
	raw, err := marshalJSON(nonNilTags(tags))
	if err != nil {
		return nil, err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE videos SET tags_json = ?, updated_at = ? WHERE id = ? AND user_id = ?`,
		raw, formatTime(now()), videoID, userID)
	if err != nil {
		return nil, fmt.Errorf("update video tags: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrRecordNotFound
	}
	return s.GetVideo(ctx, userID, videoID)
}

const projectColumns = "id, user_id, name, script, words_json, segments_json, matches_json, status, voiceover_url, created_at, updated_at"

func (s *SQLiteStore) CreateProject(ctx context.Context, p models.Project) (*models.Project, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = now()
	p.UpdatedAt = p.CreatedAt
	if p.Status == "" {
		p.Status = models.ProjectStatusDraft
	}
	normalizeProject(&p)

	var words any
	if len(p.Words) > 0 {
		raw, err := marshalJSON(p.Words)
		if err != nil {
			return nil, err
		}
		words = raw
	}
	segments, err := marshalJSON(p.Segments)
	if err != nil {
		return nil, err
	}
	matches, err := marshalJSON(p.Matches)
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO projects (`+projectColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID.String(), p.UserID, p.Name, p.Script, words, segments, matches, p.Status,
		nullableString(p.VoiceoverURL), formatTime(p.CreatedAt), formatTime(p.UpdatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}
	return s.GetProject(ctx, p.UserID, p.ID)
}

func (s *SQLiteStore) GetProject(ctx context.Context, userID string, id uuid.UUID) (*models.Project, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = ? AND user_id = ?`, id.String(), userID)
	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

func (s *SQLiteStore) SaveMatchResult(ctx context.Context, projectID uuid.UUID, segments []models.ScriptSegment, matches []models.VideoMatch, status string) error {
	p := models.Project{Segments: segments, Matches: matches}
	normalizeProject(&p)

	segRaw, err := marshalJSON(p.Segments)
	if err != nil {
		return err
	}
	matchRaw, err := marshalJSON(p.Matches)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE projects SET segments_json = ?, matches_json = ?, status = ?, updated_at = ? WHERE id = ?`,
		segRaw, matchRaw, status, formatTime(now()), projectID.String())
	if err != nil {
		return fmt.Errorf("save match result: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRecordNotFound
	}
	return nil
}

const jobColumns = "id, job_type, entity_id, user_id, status, error_message, output_json, created_at, updated_at, started_at, completed_at"

func (s *SQLiteStore) CreateJob(ctx context.Context, job models.ProcessingJob) (*models.ProcessingJob, error) {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	job.CreatedAt = now()
	job.UpdatedAt = job.CreatedAt
	if job.Status == "" {
		job.Status = models.JobStatusPending
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO processing_jobs (`+jobColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		job.ID.String(), job.JobType, job.EntityID.String(), job.UserID, job.Status,
		nullableString(job.ErrorMessage), nil,
		formatTime(job.CreatedAt), formatTime(job.UpdatedAt), nil, nil,
	)
	if err != nil {
		return nil, fmt.Errorf("insert job: %w", err)
	}
	return s.GetJob(ctx, job.UserID, job.ID)
}

func (s *SQLiteStore) UpdateJob(ctx context.Context, id uuid.UUID, status string, output any, errorMessage string) error {
	ts := formatTime(now())
	query := `UPDATE processing_jobs SET status = ?, updated_at = ?`
	args := []any{status, ts}

	switch status {
	case models.JobStatusProcessing:
		query += `, started_at = ?`
		args = append(args, ts)
	case models.JobStatusCompleted, models.JobStatusFailed:
		query += `, completed_at = ?`
		args = append(args, ts)
	}
	if output != nil {
		raw, err := marshalJSON(output)
		if err != nil {
			return err
		}
		query += `, output_json = ?`
		args = append(args, raw)
	}
	if errorMessage != "" {
		query += `, error_message = ?`
		args = append(args, errorMessage)
	}
	query += ` WHERE id = ?`
	args = append(args, id.String())

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (s *SQLiteStore) GetJob(ctx context.Context, userID string, id uuid.UUID) (*models.ProcessingJob, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+jobColumns+` FROM processing_jobs WHERE id = ? AND user_id = ?`, id.String(), userID)
	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}
	return job, nil
}

type scanner interface{ Scan(dest ...any) error }

func scanVideo(row scanner) (*models.TaggedVideo, error) {
	var (
		v          models.TaggedVideo
		tagsRaw    string
		path       sql.NullString
		duration   sql.NullFloat64
		createdRaw string
		updatedRaw string
	)
	if err := row.Scan(&v.ID, &v.UserID, &v.Name, &tagsRaw, &v.URL, &path, &duration, &createdRaw, &updatedRaw); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(tagsRaw), &v.Tags); err != nil {
		return nil, fmt.Errorf("decode tags for video %s: %w", v.ID, err)
	}
	if path.Valid {
		v.Path = &path.String
	}
	if duration.Valid {
		v.Duration = &duration.Float64
	}
	v.CreatedAt = parseTime(createdRaw)
	v.UpdatedAt = parseTime(updatedRaw)
	return &v, nil
}

func scanProject(row scanner) (*models.Project, error) {
	var (
		p          models.Project
		idRaw      string
		wordsRaw   sql.NullString
		segRaw     string
		matchRaw   string
		voiceover  sql.NullString
		createdRaw string
		updatedRaw string
	)
	if err := row.Scan(&idRaw, &p.UserID, &p.Name, &p.Script, &wordsRaw, &segRaw, &matchRaw,
		&p.Status, &voiceover, &createdRaw, &updatedRaw); err != nil {
		return nil, err
	}
	id, err := uuid.Parse(idRaw)
	if err != nil {
		return nil, fmt.Errorf("parse project id %q: %w", idRaw, err)
	}
	p.ID = id
	if wordsRaw.Valid {
		if err := json.Unmarshal([]byte(wordsRaw.String), &p.Words); err != nil {
			return nil, fmt.Errorf("decode words for project %s: %w", idRaw, err)
		}
	}
	if err := json.Unmarshal([]byte(segRaw), &p.Segments); err != nil {
		return nil, fmt.Errorf("decode segments for project %s: %w", idRaw, err)
	}
	if err := json.Unmarshal([]byte(matchRaw), &p.Matches); err != nil {
		return nil, fmt.Errorf("decode matches for project %s: %w", idRaw, err)
	}
	if voiceover.Valid {
		p.VoiceoverURL = &voiceover.String
	}
	p.CreatedAt = parseTime(createdRaw)
	p.UpdatedAt = parseTime(updatedRaw)
	return &p, nil
}

func scanJob(row scanner) (*models.ProcessingJob, error) {
	var (
		job          models.ProcessingJob
		idRaw        string
		entityRaw    string
		errorMessage sql.NullString
		output       sql.NullString
		createdRaw   string
		updatedRaw   string
		startedRaw   sql.NullString
		completedRaw sql.NullString
	)
	if err := row.Scan(&idRaw, &job.JobType, &entityRaw, &job.UserID, &job.Status, &errorMessage,
		&output, &createdRaw, &updatedRaw, &startedRaw, &completedRaw); err != nil {
		return nil, err
	}
	var err error
	if job.ID, err = uuid.Parse(idRaw); err != nil {
		return nil, fmt.Errorf("parse job id %q: %w", idRaw, err)
	}
	if job.EntityID, err = uuid.Parse(entityRaw); err != nil {
		return nil, fmt.Errorf("parse entity id %q: %w", entityRaw, err)
	}
	if errorMessage.Valid {
		job.ErrorMessage = &errorMessage.String
	}
	if output.Valid {
		job.Output = json.RawMessage(output.String)
	}
	job.CreatedAt = parseTime(createdRaw)
	job.UpdatedAt = parseTime(updatedRaw)
	job.StartedAt = parseNullableTime(startedRaw)
	job.CompletedAt = parseNullableTime(completedRaw)
	return &job, nil
}

func marshalJSON(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode json column: %w", err)
	}
	return string(raw), nil
}

func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

func nullableString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func nullableFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(raw string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

func parseNullableTime(raw sql.NullString) *time.Time {
	if !raw.Valid || raw.String == "" {
		return nil
	}
	t := parseTime(raw.String)
	return &t
}

// SetManualMatch stores m as the chosen clip for its segment, keeping segment order.
func (s *SQLiteStore) SetManualMatch(ctx context.Context, userID string, projectID uuid.UUID, m models.VideoMatch) (*models.Project, error) {
	p, err := s.GetProject(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	m.Source = models.MatchSourceManual
	if err := mergeMatch(p, m); err != nil {
		return nil, err
	}
	if err := s.SaveMatchResult(ctx, projectID, p.Segments, p.Matches, models.ProjectStatusMatched); err != nil {
		return nil, err
	}
	return s.GetProject(ctx, userID, projectID)
}
