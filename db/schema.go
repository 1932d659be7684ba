// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates the person/family/phone tables of the shared source
// convention. The service never calls it on a live source; it exists for
// building local fixtures. Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Households
CREATE TABLE IF NOT EXISTS FamiliesDraft (
    LocalFamilyId INTEGER PRIMARY KEY,
    FormId INTEGER,
    CardNumber TEXT,
    Area TEXT,
    AddressLine1 TEXT,
    AddressLine2 TEXT,
    City TEXT,
    District TEXT,
    State TEXT,
    Pincode TEXT,
    Landmark TEXT,
    NextHouseMobile TEXT,
    Notes TEXT
);

CREATE INDEX IF NOT EXISTS idx_families_area ON FamiliesDraft(Area);

-- Persons
CREATE TABLE IF NOT EXISTS PersonsDraft (
    LocalPersonId INTEGER PRIMARY KEY,
    LocalFamilyId INTEGER REFERENCES FamiliesDraft(LocalFamilyId),
    FullName TEXT,
    AgeYears INTEGER,
    Gender TEXT,
    EPICId TEXT,
    Caste TEXT,
    MotherTongue TEXT,
    IsActive INTEGER NOT NULL DEFAULT 1
);

CREATE INDEX IF NOT EXISTS idx_persons_family ON PersonsDraft(LocalFamilyId);
CREATE INDEX IF NOT EXISTS idx_persons_epic ON PersonsDraft(EPICId);

-- Phones
CREATE TABLE IF NOT EXISTS PhonesDraft (
    LocalPhoneId INTEGER PRIMARY KEY,
    LocalPersonId INTEGER REFERENCES PersonsDraft(LocalPersonId),
    PhoneNumber TEXT,
    IsPrimary INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_phones_person ON PhonesDraft(LocalPersonId);
`
