package entity

import (
	"fmt"
	"strings"
)

// Kind names one of the three record collections and the tab that shows it.
type Kind string

const (
	KindInvoices  Kind = "invoices"
	KindProducts  Kind = "products"
	KindCustomers Kind = "customers"
)

// Kinds lists the collections in tab order.
func Kinds() []Kind {
	return []Kind{KindInvoices, KindProducts, KindCustomers}
}

// ParseKind accepts a tab key case-insensitively.
func ParseKind(value string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(value))) {
	case KindInvoices:
		return KindInvoices, nil
	case KindProducts:
		return KindProducts, nil
	case KindCustomers:
		return KindCustomers, nil
	default:
		return "", fmt.Errorf("invalid tab: %q", value)
	}
}

// UploadState is the state of one browser's upload session.
type UploadState string

const (
	UploadStateIdle         UploadState = "IDLE"
	UploadStateFileSelected UploadState = "FILE_SELECTED"
	UploadStateUploading    UploadState = "UPLOADING"
	UploadStateSucceeded    UploadState = "SUCCEEDED"
	UploadStateFailed       UploadState = "FAILED"
)

// FileKind is the advisory document family derived from a file name.
type FileKind string

const (
	FileKindUnknown     FileKind = ""
	FileKindPDF         FileKind = "PDF"
	FileKindSpreadsheet FileKind = "EXCEL"
	FileKindImage       FileKind = "IMAGE"
)
