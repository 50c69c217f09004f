package db

// schema has no migration path: a changed schema needs a fresh database file.
const schema = `
-- Summaries table: one row per generated summary, never updated in place
CREATE TABLE IF NOT EXISTS summaries (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    url TEXT NOT NULL,
    title TEXT,
    summary_text TEXT NOT NULL,
    summary_length TEXT,
    summary_tone TEXT,
    model_used TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    word_count INTEGER,
    video_duration TEXT,
    video_channel TEXT
);

CREATE INDEX IF NOT EXISTS idx_summaries_created ON summaries(created_at DESC);
`
