// Package importer parses transaction CSV files into create requests. Parsing
// is lenient per row: a malformed row is reported with its row number while
// the rest of the file is still processed.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/congnodev/cashflow_mgmt_app/internal/dto"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const dateFormat = "2006-01-02"

// validate applies the same binding rules gin enforces on the JSON create
// endpoint, since CSV rows never pass through gin's binding.
var validate = func() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	return v
}()

// Expected header, in order. Optional trailing columns may be omitted.
var expectedHeader = []string{
	"code", "customer_id", "bank_account_id", "branch_id",
	"type", "amount", "date", "description", "reference_number",
}

// Column indexes into expectedHeader.
const (
	colCode = iota
	colCustomerID
	colBankAccountID
	colBranchID
	colType
	colAmount
	colDate
	colDescription
	colReferenceNumber
)

// requiredColumns is the minimum column count for a usable row: everything up
// to and including the date.
const requiredColumns = colDate + 1

// ParseTransactionsCSV reads a transaction CSV and returns the create
// requests for the rows that parsed, plus per-row errors for the rest. The
// first record must be the header.
func ParseTransactionsCSV(r io.Reader) ([]dto.CreateTransactionRequest, []dto.ImportRowError, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil, fmt.Errorf("empty file")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("reading header: %w", err)
	}
	if err := validateHeader(header); err != nil {
		return nil, nil, err
	}

	var reqs []dto.CreateTransactionRequest
	var rowErrors []dto.ImportRowError
	rowNum := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			rowErrors = append(rowErrors, dto.ImportRowError{Row: rowNum, Error: err.Error()})
			continue
		}
		req, err := parseRow(record)
		if err != nil {
			rowErrors = append(rowErrors, dto.ImportRowError{Row: rowNum, Error: err.Error()})
			continue
		}
		req.Row = rowNum
		reqs = append(reqs, req)
	}
	return reqs, rowErrors, nil
}

func validateHeader(header []string) error {
	if len(header) < requiredColumns {
		return fmt.Errorf("header has %d columns, want at least %d", len(header), requiredColumns)
	}
	for i, want := range expectedHeader[:requiredColumns] {
		got := strings.ToLower(strings.TrimSpace(header[i]))
		if got != want {
			return fmt.Errorf("header column %d is %q, want %q", i+1, header[i], want)
		}
	}
	return nil
}

func parseRow(record []string) (dto.CreateTransactionRequest, error) {
	var req dto.CreateTransactionRequest
	if len(record) < requiredColumns {
		return req, fmt.Errorf("row has %d columns, want at least %d", len(record), requiredColumns)
	}

	field := func(i int) string {
		if i < len(record) {
			return strings.TrimSpace(record[i])
		}
		return ""
	}

	amount, err := decimal.NewFromString(field(colAmount))
	if err != nil {
		return req, fmt.Errorf("invalid amount %q", field(colAmount))
	}
	date, err := time.Parse(dateFormat, field(colDate))
	if err != nil {
		return req, fmt.Errorf("invalid date %q, want YYYY-MM-DD", field(colDate))
	}

	req = dto.CreateTransactionRequest{
		Code:            field(colCode),
		CustomerID:      field(colCustomerID),
		BankAccountID:   field(colBankAccountID),
		BranchID:        field(colBranchID),
		TransactionType: strings.ToLower(field(colType)),
		Amount:          amount,
		TransactionDate: date,
		Description:     field(colDescription),
		ReferenceNumber: field(colReferenceNumber),
	}
	if err := validate.Struct(req); err != nil {
		return req, err
	}
	return req, nil
}
