package repository

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    username   TEXT NOT NULL UNIQUE,
    email      TEXT NOT NULL UNIQUE,
    bio        TEXT,
    avatar_url TEXT NOT NULL DEFAULT '',
    created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS pins (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    title        TEXT NOT NULL,
    description  TEXT,
    image_url    TEXT NOT NULL DEFAULT '',
    image_width  INTEGER NOT NULL DEFAULT 0,
    image_height INTEGER NOT NULL DEFAULT 0,
    link         TEXT,
    owner_id     INTEGER NOT NULL REFERENCES users(id),
    visibility   TEXT NOT NULL DEFAULT 'Public',
    is_hidden    BOOLEAN NOT NULL DEFAULT 0,
    is_reported  BOOLEAN NOT NULL DEFAULT 0,
    created_at   DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_pins_owner ON pins(owner_id);
CREATE INDEX IF NOT EXISTS idx_pins_visibility ON pins(visibility, is_hidden, is_reported);

CREATE TABLE IF NOT EXISTS views (
    id        INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id   INTEGER NOT NULL REFERENCES users(id),
    pin_id    INTEGER NOT NULL REFERENCES pins(id),
    viewed_at DATETIME NOT NULL,
    UNIQUE(user_id, pin_id)
);

CREATE INDEX IF NOT EXISTS idx_views_user ON views(user_id);

CREATE TABLE IF NOT EXISTS notifications (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id    INTEGER NOT NULL REFERENCES users(id),
    type       TEXT NOT NULL,
    payload    TEXT NOT NULL DEFAULT '{}',
    is_read    BOOLEAN NOT NULL DEFAULT 0,
    created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications(user_id, created_at);
`
