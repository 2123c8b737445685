package db

import (
	"context"
	"database/sql/driver"

	"github.com/apache/arrow-go/v18/arrow"
	duckdb "github.com/marcboeker/go-duckdb"
)

// Frame is a columnar result materialized via DuckDB's native Arrow export,
// for callers that want to stream large result sets column-wise instead of
// paying the row-map + JSON round trip that Execute/ExecuteInto take.
type Frame struct {
	Schema  *arrow.Schema
	Records []arrow.Record
}

// NumRows returns the total row count across all record batches.
func (f *Frame) NumRows() int64 {
	var n int64
	for _, r := range f.Records {
		n += r.NumRows()
	}
	return n
}

// Release drops references to the underlying Arrow buffers. Callers must
// call this once done with the Frame.
func (f *Frame) Release() {
	for _, r := range f.Records {
		r.Release()
	}
}

// ExecuteFrame runs query through DuckDB's Arrow export path, returning the
// result as a sequence of Arrow record batches rather than row maps.
// Surfaces FeatureUnavailable if the driver connection doesn't support the
// Arrow extraction path (e.g. a non-DuckDB driver.Conn).
func (c *Connection) ExecuteFrame(ctx context.Context, query string, params ...any) (*Frame, error) {
	if c.isClosed() {
		return nil, ErrNotConnected
	}
	sqlConn, err := c.db.Conn(ctx)
	if err != nil {
		return nil, NewError(QueryError, "acquire connection", err)
	}
	defer sqlConn.Close()

	var frame *Frame
	rawErr := sqlConn.Raw(func(driverConn any) error {
		conn, ok := driverConn.(driver.Conn)
		if !ok {
			return NewError(FeatureUnavailable, "driver connection does not support Arrow export", nil)
		}
		extractor, err := duckdb.NewArrowFromConn(conn)
		if err != nil {
			return NewError(FeatureUnavailable, "initialize Arrow extractor", err)
		}
		reader, err := extractor.QueryContext(ctx, query, params...)
		if err != nil {
			return NewError(QueryError, "execute Arrow query", err)
		}
		defer reader.Release()

		var records []arrow.Record
		for reader.Next() {
			rec := reader.Record()
			rec.Retain()
			records = append(records, rec)
		}
		if err := reader.Err(); err != nil {
			for _, rec := range records {
				rec.Release()
			}
			return NewError(QueryError, "read Arrow stream", err)
		}
		frame = &Frame{Schema: reader.Schema(), Records: records}
		return nil
	})
	if rawErr != nil {
		return nil, rawErr
	}
	return frame, nil
}
