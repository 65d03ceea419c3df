package db

// schema is the full database schema.
//
// availabilities.user_id and marketplace_items.user_id deliberately carry no
// foreign-key constraint: ownership is a non-owning reference, and rows left
// behind by a vanished user are removed lazily by the sweeper before list
// reads instead of being cascaded by the database.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id         INTEGER PRIMARY KEY,
    name       TEXT NOT NULL,
    email      TEXT NOT NULL UNIQUE,
    contact    TEXT NOT NULL,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS availabilities (
    id                            INTEGER PRIMARY KEY,
    user_id                       INTEGER NOT NULL,
    housing_property              TEXT NOT NULL,
    apartment_plan                TEXT NOT NULL,
    number_of_roommates_preferred INTEGER NOT NULL CHECK (number_of_roommates_preferred > 0),
    gender_preference             TEXT NOT NULL,
    cost_preference_min           REAL NOT NULL,
    cost_preference_max           REAL NOT NULL,
    lease_term                    TEXT NOT NULL,
    dietary_restrictions          TEXT,
    course_program                TEXT,
    community                     TEXT,
    miscellaneous                 TEXT,
    status                        TEXT NOT NULL DEFAULT 'available',
    filled_at                     DATETIME,
    post_type                     TEXT NOT NULL,
    created_at                    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_availabilities_user ON availabilities(user_id);
CREATE INDEX IF NOT EXISTS idx_availabilities_status ON availabilities(status);

CREATE TABLE IF NOT EXISTS marketplace_items (
    id          INTEGER PRIMARY KEY,
    user_id     INTEGER NOT NULL,
    title       TEXT NOT NULL,
    description TEXT,
    category    TEXT NOT NULL,
    price       REAL NOT NULL,
    condition   TEXT,
    image_url   TEXT,
    status      TEXT NOT NULL DEFAULT 'available',
    created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_marketplace_items_user ON marketplace_items(user_id);
`
