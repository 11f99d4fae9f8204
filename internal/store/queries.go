// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"gabysite/internal/model"
)

// DBTX is the subset of *sql.DB / *sql.Tx the queries need.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Queries wraps a database handle with typed query methods.
type Queries struct {
	db DBTX
}

// New creates a Queries instance over a database or transaction.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns Queries bound to the given transaction.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

// --- videos ---

const createVideo = `
INSERT INTO videos (title, description, thumbnail, video_url, source, youtube_id, date, category, year, month, position, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id, title, description, thumbnail, video_url, source, youtube_id, date, category, year, month, position, created_at, updated_at
`

// CreateVideoParams holds the fields for CreateVideo.
type CreateVideoParams struct {
	Title       string
	Description string
	Thumbnail   string
	VideoURL    string
	Source      string
	YouTubeID   sql.NullString
	Date        string
	Category    string
	Year        int
	Month       int
	Position    int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func scanVideo(row interface{ Scan(...any) error }) (model.Video, error) {
	var v model.Video
	err := row.Scan(&v.ID, &v.Title, &v.Description, &v.Thumbnail, &v.VideoURL,
		&v.Source, &v.YouTubeID, &v.Date, &v.Category, &v.Year, &v.Month,
		&v.Position, &v.CreatedAt, &v.UpdatedAt)
	return v, err
}

// CreateVideo inserts a video and returns the stored row.
func (q *Queries) CreateVideo(ctx context.Context, arg CreateVideoParams) (model.Video, error) {
	row := q.db.QueryRowContext(ctx, createVideo,
		arg.Title, arg.Description, arg.Thumbnail, arg.VideoURL, arg.Source,
		arg.YouTubeID, arg.Date, arg.Category, arg.Year, arg.Month,
		arg.Position, arg.CreatedAt, arg.UpdatedAt)
	return scanVideo(row)
}

const getVideoByID = `
SELECT id, title, description, thumbnail, video_url, source, youtube_id, date, category, year, month, position, created_at, updated_at
FROM videos WHERE id = ?
`

// GetVideoByID fetches one video.
func (q *Queries) GetVideoByID(ctx context.Context, id int64) (model.Video, error) {
	return scanVideo(q.db.QueryRowContext(ctx, getVideoByID, id))
}

const listVideos = `
SELECT id, title, description, thumbnail, video_url, source, youtube_id, date, category, year, month, position, created_at, updated_at
FROM videos ORDER BY position, id
`

// ListVideos returns all videos in display order.
func (q *Queries) ListVideos(ctx context.Context) ([]model.Video, error) {
	rows, err := q.db.QueryContext(ctx, listVideos)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var videos []model.Video
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}

const updateVideo = `
UPDATE videos
SET title = ?, description = ?, thumbnail = ?, video_url = ?, source = ?, youtube_id = ?, date = ?, category = ?, year = ?, month = ?, position = ?, updated_at = ?
WHERE id = ?
RETURNING id, title, description, thumbnail, video_url, source, youtube_id, date, category, year, month, position, created_at, updated_at
`

// UpdateVideoParams holds the fields for UpdateVideo.
type UpdateVideoParams struct {
	ID          int64
	Title       string
	Description string
	Thumbnail   string
	VideoURL    string
	Source      string
	YouTubeID   sql.NullString
	Date        string
	Category    string
	Year        int
	Month       int
	Position    int64
	UpdatedAt   time.Time
}

// UpdateVideo rewrites a video row and returns the stored result.
func (q *Queries) UpdateVideo(ctx context.Context, arg UpdateVideoParams) (model.Video, error) {
	row := q.db.QueryRowContext(ctx, updateVideo,
		arg.Title, arg.Description, arg.Thumbnail, arg.VideoURL, arg.Source,
		arg.YouTubeID, arg.Date, arg.Category, arg.Year, arg.Month,
		arg.Position, arg.UpdatedAt, arg.ID)
	return scanVideo(row)
}

const deleteVideo = `DELETE FROM videos WHERE id = ?`

// DeleteVideo removes a video.
func (q *Queries) DeleteVideo(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteVideo, id)
	return err
}

const countVideos = `SELECT COUNT(*) FROM videos`

// CountVideos returns the number of videos.
func (q *Queries) CountVideos(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countVideos).Scan(&count)
	return count, err
}

// --- media translations ---

// MediaTranslation is one stored translation row.
type MediaTranslation struct {
	ID          int64
	MediaType   string
	MediaID     int64
	Locale      string
	Title       string
	Alt         string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

const upsertMediaTranslation = `
INSERT INTO media_translations (media_type, media_id, locale, title, alt, description, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (media_type, media_id, locale)
DO UPDATE SET title = excluded.title, alt = excluded.alt, description = excluded.description, updated_at = excluded.updated_at
RETURNING id, media_type, media_id, locale, title, alt, description, created_at, updated_at
`

// UpsertMediaTranslationParams holds the fields for UpsertMediaTranslation.
type UpsertMediaTranslationParams struct {
	MediaType   string
	MediaID     int64
	Locale      string
	Title       string
	Alt         string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func scanMediaTranslation(row interface{ Scan(...any) error }) (MediaTranslation, error) {
	var t MediaTranslation
	err := row.Scan(&t.ID, &t.MediaType, &t.MediaID, &t.Locale, &t.Title, &t.Alt,
		&t.Description, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

// UpsertMediaTranslation inserts or replaces one translation row.
func (q *Queries) UpsertMediaTranslation(ctx context.Context, arg UpsertMediaTranslationParams) (MediaTranslation, error) {
	row := q.db.QueryRowContext(ctx, upsertMediaTranslation,
		arg.MediaType, arg.MediaID, arg.Locale, arg.Title, arg.Alt,
		arg.Description, arg.CreatedAt, arg.UpdatedAt)
	return scanMediaTranslation(row)
}

const listMediaTranslations = `
SELECT id, media_type, media_id, locale, title, alt, description, created_at, updated_at
FROM media_translations WHERE media_type = ? ORDER BY media_id, locale
`

// ListMediaTranslations returns all translation rows for one media type.
func (q *Queries) ListMediaTranslations(ctx context.Context, mediaType string) ([]MediaTranslation, error) {
	rows, err := q.db.QueryContext(ctx, listMediaTranslations, mediaType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []MediaTranslation
	for rows.Next() {
		t, err := scanMediaTranslation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

const deleteMediaTranslations = `DELETE FROM media_translations WHERE media_type = ? AND media_id = ?`

// DeleteMediaTranslations removes every locale's translations for one record.
func (q *Queries) DeleteMediaTranslations(ctx context.Context, mediaType string, mediaID int64) error {
	_, err := q.db.ExecContext(ctx, deleteMediaTranslations, mediaType, mediaID)
	return err
}

// --- wall entries ---

const createWallEntry = `
INSERT INTO wall_entries (id, full_name, message, country, user_agent, created_at)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING id, full_name, message, country, user_agent, created_at
`

// CreateWallEntryParams holds the fields for CreateWallEntry.
type CreateWallEntryParams struct {
	ID        string
	FullName  string
	Message   string
	Country   string
	UserAgent string
	CreatedAt time.Time
}

func scanWallEntry(row interface{ Scan(...any) error }) (model.WallEntry, error) {
	var e model.WallEntry
	err := row.Scan(&e.ID, &e.FullName, &e.Message, &e.Country, &e.UserAgent, &e.CreatedAt)
	return e, err
}

// CreateWallEntry inserts a wall entry and returns the stored row.
func (q *Queries) CreateWallEntry(ctx context.Context, arg CreateWallEntryParams) (model.WallEntry, error) {
	row := q.db.QueryRowContext(ctx, createWallEntry,
		arg.ID, arg.FullName, arg.Message, arg.Country, arg.UserAgent, arg.CreatedAt)
	return scanWallEntry(row)
}

const listWallEntries = `
SELECT id, full_name, message, country, user_agent, created_at
FROM wall_entries ORDER BY created_at DESC, id
`

// ListWallEntries returns every entry, newest first.
func (q *Queries) ListWallEntries(ctx context.Context) ([]model.WallEntry, error) {
	rows, err := q.db.QueryContext(ctx, listWallEntries)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.WallEntry
	for rows.Next() {
		e, err := scanWallEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

const countWallEntries = `SELECT COUNT(*) FROM wall_entries`

// CountWallEntries returns the number of wall entries.
func (q *Queries) CountWallEntries(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countWallEntries).Scan(&count)
	return count, err
}

const deleteWallEntry = `DELETE FROM wall_entries WHERE id = ?`

// DeleteWallEntry removes one entry (admin moderation).
func (q *Queries) DeleteWallEntry(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, deleteWallEntry, id)
	return err
}

// --- admin tokens ---

const createAdminToken = `
INSERT INTO admin_tokens (token_hash, token_hint, last_used_at, expires_at, created_at)
VALUES (?, ?, ?, ?, ?)
RETURNING id, token_hash, token_hint, last_used_at, expires_at, created_at
`

// CreateAdminTokenParams holds the fields for CreateAdminToken.
type CreateAdminTokenParams struct {
	TokenHash  string
	TokenHint  string
	LastUsedAt time.Time
	ExpiresAt  time.Time
	CreatedAt  time.Time
}

func scanAdminToken(row interface{ Scan(...any) error }) (model.AdminToken, error) {
	var t model.AdminToken
	err := row.Scan(&t.ID, &t.TokenHash, &t.TokenHint, &t.LastUsedAt, &t.ExpiresAt, &t.CreatedAt)
	return t, err
}

// CreateAdminToken stores a new token hash.
func (q *Queries) CreateAdminToken(ctx context.Context, arg CreateAdminTokenParams) (model.AdminToken, error) {
	row := q.db.QueryRowContext(ctx, createAdminToken,
		arg.TokenHash, arg.TokenHint, arg.LastUsedAt, arg.ExpiresAt, arg.CreatedAt)
	return scanAdminToken(row)
}

const getAdminTokenByHash = `
SELECT id, token_hash, token_hint, last_used_at, expires_at, created_at
FROM admin_tokens WHERE token_hash = ?
`

// GetAdminTokenByHash looks up a token by its hash.
func (q *Queries) GetAdminTokenByHash(ctx context.Context, tokenHash string) (model.AdminToken, error) {
	return scanAdminToken(q.db.QueryRowContext(ctx, getAdminTokenByHash, tokenHash))
}

const touchAdminToken = `UPDATE admin_tokens SET last_used_at = ? WHERE id = ?`

// TouchAdminToken records token usage.
func (q *Queries) TouchAdminToken(ctx context.Context, id int64, usedAt time.Time) error {
	_, err := q.db.ExecContext(ctx, touchAdminToken, usedAt, id)
	return err
}

const deleteAdminToken = `DELETE FROM admin_tokens WHERE token_hash = ?`

// DeleteAdminToken revokes a token (logout).
func (q *Queries) DeleteAdminToken(ctx context.Context, tokenHash string) error {
	_, err := q.db.ExecContext(ctx, deleteAdminToken, tokenHash)
	return err
}

const deleteExpiredAdminTokens = `DELETE FROM admin_tokens WHERE expires_at < ?`

// DeleteExpiredAdminTokens prunes expired tokens, returning how many.
func (q *Queries) DeleteExpiredAdminTokens(ctx context.Context, now time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteExpiredAdminTokens, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// --- events ---

const createEvent = `
INSERT INTO events (level, category, message, metadata, created_at)
VALUES (?, ?, ?, ?, ?)
`

// CreateEventParams holds the fields for CreateEvent.
type CreateEventParams struct {
	Level     string
	Category  string
	Message   string
	Metadata  string
	CreatedAt time.Time
}

// CreateEvent appends an event log row.
func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) error {
	_, err := q.db.ExecContext(ctx, createEvent,
		arg.Level, arg.Category, arg.Message, arg.Metadata, arg.CreatedAt)
	return err
}

const listEvents = `
SELECT id, level, category, message, metadata, created_at
FROM events ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?
`

// ListEventsParams holds pagination for ListEvents.
type ListEventsParams struct {
	Limit  int64
	Offset int64
}

// ListEvents returns event rows, newest first.
func (q *Queries) ListEvents(ctx context.Context, arg ListEventsParams) ([]model.Event, error) {
	rows, err := q.db.QueryContext(ctx, listEvents, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Event
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.Level, &e.Category, &e.Message, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

const deleteEventsBefore = `DELETE FROM events WHERE created_at < ?`

// DeleteEventsBefore prunes event rows older than the cutoff.
func (q *Queries) DeleteEventsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteEventsBefore, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// --- config ---

const getConfig = `SELECT value FROM config WHERE key = ?`

// GetConfig reads one config value.
func (q *Queries) GetConfig(ctx context.Context, key string) (string, error) {
	var value string
	err := q.db.QueryRowContext(ctx, getConfig, key).Scan(&value)
	return value, err
}

const setConfig = `
INSERT INTO config (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
`

// SetConfig writes one config value.
func (q *Queries) SetConfig(ctx context.Context, key, value string, updatedAt time.Time) error {
	_, err := q.db.ExecContext(ctx, setConfig, key, value, updatedAt)
	return err
}

// --- uploads ---

const createUpload = `
INSERT INTO uploads (uuid, filename, mime_type, size, width, height, taken_at, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id, uuid, filename, mime_type, size, width, height, taken_at, created_at
`

// CreateUploadParams holds the fields for CreateUpload.
type CreateUploadParams struct {
	UUID      string
	Filename  string
	MimeType  string
	Size      int64
	Width     sql.NullInt64
	Height    sql.NullInt64
	TakenAt   sql.NullTime
	CreatedAt time.Time
}

func scanUpload(row interface{ Scan(...any) error }) (model.Upload, error) {
	var u model.Upload
	err := row.Scan(&u.ID, &u.UUID, &u.Filename, &u.MimeType, &u.Size,
		&u.Width, &u.Height, &u.TakenAt, &u.CreatedAt)
	return u, err
}

// CreateUpload records an uploaded photo file.
func (q *Queries) CreateUpload(ctx context.Context, arg CreateUploadParams) (model.Upload, error) {
	row := q.db.QueryRowContext(ctx, createUpload,
		arg.UUID, arg.Filename, arg.MimeType, arg.Size, arg.Width, arg.Height,
		arg.TakenAt, arg.CreatedAt)
	return scanUpload(row)
}

const getUploadByUUID = `
SELECT id, uuid, filename, mime_type, size, width, height, taken_at, created_at
FROM uploads WHERE uuid = ?
`

// GetUploadByUUID fetches one upload.
func (q *Queries) GetUploadByUUID(ctx context.Context, uuid string) (model.Upload, error) {
	return scanUpload(q.db.QueryRowContext(ctx, getUploadByUUID, uuid))
}

const createUploadVariant = `
INSERT INTO upload_variants (upload_id, type, width, height, size, created_at)
VALUES (?, ?, ?, ?, ?, ?)
`

// CreateUploadVariantParams holds the fields for CreateUploadVariant.
type CreateUploadVariantParams struct {
	UploadID  int64
	Type      string
	Width     int64
	Height    int64
	Size      int64
	CreatedAt time.Time
}

// CreateUploadVariant records a generated image variant.
func (q *Queries) CreateUploadVariant(ctx context.Context, arg CreateUploadVariantParams) error {
	_, err := q.db.ExecContext(ctx, createUploadVariant,
		arg.UploadID, arg.Type, arg.Width, arg.Height, arg.Size, arg.CreatedAt)
	return err
}
