package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuditTrail is an append-only traceability record written alongside
// each supplier-transaction-producing action. It is never read back.
type AuditTrail struct {
	Id          int       `json:"id"`
	TransType   int       `json:"type"`
	TransNo     int       `json:"trans_no"`
	User        string    `json:"user"`
	Stamp       time.Time `json:"stamp"`
	Description string    `json:"description"`
	FiscalYear  int       `json:"fiscal_year"`
	GlDate      Date      `json:"gl_date"`
}

// PersonTypeSupplier tags bank ledger rows whose counterparty is a
// supplier.
const PersonTypeSupplier = 3

// BankTrans is the bank ledger row created when a supplier payment is
// recorded. Amount carries the negated payment + bank charge.
type BankTrans struct {
	Id           int             `json:"id"`
	TransType    int             `json:"type"`
	TransNo      int             `json:"trans_no"`
	BankAct      string          `json:"bank_act"`
	Ref          string          `json:"ref"`
	TransDate    Date            `json:"trans_date"`
	Amount       decimal.Decimal `json:"amount"`
	PersonTypeId int             `json:"person_type_id"`
	PersonId     int             `json:"person_id"`
}
