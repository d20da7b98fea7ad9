package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/AzadNikarthil/rollscan/internal/domain"
)

// voterColumns lists the insert columns in positional order.
var voterColumns = []string{
	"epic_id", "voter_name", "guardian_name", "guardian_relation", "age",
	"gender", "house_details", "full_address", "pincode", "section_no",
	"section_name", "part_no", "polling_station_name",
	"assembly_constituency_no", "assembly_constituency_name", "district_name",
	"publication_date", "data_source_file",
}

// UpsertVoters writes records in batches inside one transaction. Rows whose
// epic_id already exists are silently skipped, so repeated runs over the same
// document neither fail nor duplicate. Returns the number of rows actually
// inserted.
func (s *Store) UpsertVoters(ctx context.Context, records []domain.VoterRecord, batchSize int) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}
	if batchSize < 1 {
		batchSize = len(records)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, domain.PersistenceError("begin transaction", err)
	}
	defer tx.Rollback()

	var inserted int64
	for start := 0; start < len(records); start += batchSize {
		end := start + batchSize
		if end > len(records) {
			end = len(records)
		}

		n, err := s.insertBatch(ctx, tx, records[start:end])
		if err != nil {
			return 0, domain.PersistenceError("insert voter batch", err)
		}
		inserted += n
	}

	if err := tx.Commit(); err != nil {
		return 0, domain.PersistenceError("commit voter batch", err)
	}
	return inserted, nil
}

func (s *Store) insertBatch(ctx context.Context, tx *sql.Tx, records []domain.VoterRecord) (int64, error) {
	ncols := len(voterColumns)
	placeholders := make([]string, 0, len(records))
	args := make([]interface{}, 0, len(records)*ncols)

	for i, r := range records {
		row := make([]string, ncols)
		for j := range row {
			row[j] = fmt.Sprintf("$%d", i*ncols+j+1)
		}
		placeholders = append(placeholders, "("+strings.Join(row, ", ")+")")

		args = append(args,
			r.EpicID,
			r.Name,
			nullStr(r.GuardianName),
			nullStr(r.GuardianRelation),
			nullInt(r.Age),
			nullStr(r.Gender),
			nullStr(r.HouseDetail),
			nullStr(r.FullAddress),
			nullInt(r.Pincode),
			nullInt(r.SectionNumber),
			nullStr(r.SectionName),
			nullInt(r.PartNumber),
			nullStr(r.PollingStationName),
			nullInt(r.ConstituencyNumber),
			nullStr(r.ConstituencyName),
			nullStr(r.DistrictName),
			nullStr(r.PublicationDate),
			nullStr(r.SourceFile),
		)
	}

	query := fmt.Sprintf(
		"INSERT INTO voters (%s) VALUES %s ON CONFLICT (epic_id) DO NOTHING",
		strings.Join(voterColumns, ", "),
		strings.Join(placeholders, ", "),
	)

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// CountVoters returns the total number of stored records.
func (s *Store) CountVoters(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM voters").Scan(&n)
	if err != nil {
		return 0, domain.PersistenceError("count voters", err)
	}
	return n, nil
}

// DistrictCount pairs a district with its stored record count.
type DistrictCount struct {
	District string
	Count    int64
}

// CountByDistrict returns record counts grouped by district, largest first.
// Records whose district could not be extracted are grouped under "".
func (s *Store) CountByDistrict(ctx context.Context) ([]DistrictCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT COALESCE(district_name, ''), COUNT(*)
		FROM voters
		GROUP BY district_name
		ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, domain.PersistenceError("count by district", err)
	}
	defer rows.Close()

	var counts []DistrictCount
	for rows.Next() {
		var dc DistrictCount
		if err := rows.Scan(&dc.District, &dc.Count); err != nil {
			return nil, domain.PersistenceError("scan district count", err)
		}
		counts = append(counts, dc)
	}
	return counts, rows.Err()
}

func nullStr(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
