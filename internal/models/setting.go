package models

import "time"

// Setting is a key/value row; values are JSON documents.
type Setting struct {
	Key       string    `gorm:"primaryKey;size:50" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

const SettingPaymentMethods = "payment_methods"

type BankInfo struct {
	BankName      string `json:"bank_name"`
	AccountName   string `json:"account_name"`
	AccountNumber string `json:"account_number"`
	Note          string `json:"note,omitempty"`
}

type PaymentMethod struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Enabled  bool      `json:"enabled"`
	BankInfo *BankInfo `json:"bank_info,omitempty"`
}

type PaymentSettings struct {
	Methods []PaymentMethod `json:"methods"`
}
