// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles SQL schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(ctx, conn); err != nil {
		return err
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The same statements run on PostgreSQL and SQLite.

# Tables

One row per poll:

  - id: UUID, primary key
  - title, description, duration: display text
  - created_at: RFC 3339 timestamp
  - dates, participants, instruments: JSON arrays
  - responses: JSON array of responses, '[]' when empty
  - planning: JSON object (date -> instrument -> assignment), NULL until saved
  - deletion_token: the poll's admin key

Each field is replaced as a whole, so a write never touches more than one
JSON column.

# Indexes

  - poll.created_at
*/
package db
