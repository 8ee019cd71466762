package domain

import (
	"sort"
	"strconv"
	"strings"
)

// AttributeKey names an order attribute a rate row can condition on. The set
// is closed except for custom columns, which use the "custom_column:<id>"
// form via CustomColumnKey.
type AttributeKey string

const (
	KeyLanguagePair    AttributeKey = "language_pair"
	KeyOrderNumber     AttributeKey = "order_number"
	KeyName            AttributeKey = "name"
	KeyReceivedAt      AttributeKey = "received_at"
	KeyClient          AttributeKey = "client"
	KeyContractor      AttributeKey = "contractor"
	KeyDeadline        AttributeKey = "deadline"
	KeyCompletedAt     AttributeKey = "completed_at"
	KeyOralLang        AttributeKey = "oral_lang"
	KeyActivityType    AttributeKey = "repertorium_activity_type"
	KeySpecialization  AttributeKey = "specialization"
	KeyService         AttributeKey = "service"
	KeyUnit            AttributeKey = "unit"
	KeyQuantity        AttributeKey = "quantity"
	KeyAmount          AttributeKey = "amount"
	KeyOrderStatus     AttributeKey = "order_status"
	KeyInvoiceStatus   AttributeKey = "invoice_status"
	KeyPaymentDue      AttributeKey = "payment_due"
	KeyBook            AttributeKey = "book"
	KeyTranslationType AttributeKey = "translation_type"
	KeyInvoiceDesc     AttributeKey = "invoice_description"
	KeyDocumentAuthor  AttributeKey = "document_author"
	KeyDocumentName    AttributeKey = "document_name"
	KeyDocumentDate    AttributeKey = "document_date"
	KeyDocumentNumber  AttributeKey = "document_number"
	KeyDocumentRemarks AttributeKey = "document_form_remarks"
	KeyRepertoriumNote AttributeKey = "repertorium_notes"
	KeyOralDate        AttributeKey = "oral_date"
	KeyOralPlace       AttributeKey = "oral_place"
	KeyOralDuration    AttributeKey = "oral_duration"
	KeyOralScope       AttributeKey = "oral_scope"
	KeyRefusalDate     AttributeKey = "refusal_date"
	KeyRefusalOrgan    AttributeKey = "refusal_organ"
	KeyRefusalReason   AttributeKey = "refusal_reason"
)

const customColumnPrefix = "custom_column:"

func CustomColumnKey(columnID string) AttributeKey {
	return AttributeKey(customColumnPrefix + columnID)
}

// Candidate is one attribute the order currently exhibits.
type Candidate struct {
	Key   AttributeKey `json:"key"`
	Value string       `json:"value"`
}

// CandidateSet keeps candidates in insertion order, deduplicated by key plus
// case-insensitive value.
type CandidateSet struct {
	items []Candidate
	seen  map[string]struct{}
}

func NewCandidateSet() *CandidateSet {
	return &CandidateSet{seen: make(map[string]struct{})}
}

func (s *CandidateSet) Add(key AttributeKey, value string) {
	value = strings.TrimSpace(value)
	if key == "" || value == "" {
		return
	}
	dedupe := string(key) + "\x00" + strings.ToLower(value)
	if _, ok := s.seen[dedupe]; ok {
		return
	}
	s.seen[dedupe] = struct{}{}
	s.items = append(s.items, Candidate{Key: key, Value: value})
}

func (s *CandidateSet) Items() []Candidate { return s.items }

// OrderContext is the snapshot of order fields the candidate builder reads.
// All fields are optional; empty ones produce no candidate.
type OrderContext struct {
	LanguagePair    string
	OrderNumber     string
	Name            string
	ReceivedAt      string
	ClientShortName string
	ContractorShort string
	Deadline        string
	CompletedAt     string
	OralLang        string
	ActivityType    string
	Specialization  string
	ServiceName     string
	UnitName        string
	Quantity        *float64
	Amount          *float64
	OrderStatus     string
	InvoiceStatus   string
	PaymentDue      string
	BookName        string
	TranslationType string
	InvoiceDesc     string
	DocumentAuthor  string
	DocumentName    string
	DocumentDate    string
	DocumentNumber  string
	DocumentRemarks string
	RepertoriumNote string
	OralDate        string
	OralPlace       string
	OralDuration    string
	OralScope       string
	RefusalDate     string
	RefusalOrgan    string
	RefusalReason   string
	CustomValues    map[string]string
}

// BuildCandidates derives every matchable attribute of an order. The language
// pair falls back to the oral language so interpreting orders without a
// written pair still match pair-scoped rates.
func BuildCandidates(ctx OrderContext) []Candidate {
	set := NewCandidateSet()

	pair := strings.TrimSpace(ctx.LanguagePair)
	if pair == "" {
		pair = strings.TrimSpace(ctx.OralLang)
	}
	set.Add(KeyLanguagePair, pair)

	set.Add(KeyOrderNumber, ctx.OrderNumber)
	set.Add(KeyName, ctx.Name)
	set.Add(KeyReceivedAt, ctx.ReceivedAt)
	set.Add(KeyClient, ctx.ClientShortName)
	set.Add(KeyContractor, ctx.ContractorShort)
	set.Add(KeyDeadline, ctx.Deadline)
	set.Add(KeyCompletedAt, ctx.CompletedAt)
	set.Add(KeyOralLang, ctx.OralLang)
	set.Add(KeyActivityType, ctx.ActivityType)
	set.Add(KeySpecialization, ctx.Specialization)
	set.Add(KeyService, ctx.ServiceName)
	set.Add(KeyUnit, ctx.UnitName)
	if ctx.Quantity != nil {
		set.Add(KeyQuantity, formatNumber(*ctx.Quantity))
	}
	if ctx.Amount != nil {
		set.Add(KeyAmount, formatNumber(*ctx.Amount))
	}
	set.Add(KeyOrderStatus, ctx.OrderStatus)
	set.Add(KeyInvoiceStatus, ctx.InvoiceStatus)
	set.Add(KeyPaymentDue, ctx.PaymentDue)
	set.Add(KeyBook, ctx.BookName)
	set.Add(KeyTranslationType, ctx.TranslationType)
	set.Add(KeyInvoiceDesc, ctx.InvoiceDesc)
	set.Add(KeyDocumentAuthor, ctx.DocumentAuthor)
	set.Add(KeyDocumentName, ctx.DocumentName)
	set.Add(KeyDocumentDate, ctx.DocumentDate)
	set.Add(KeyDocumentNumber, ctx.DocumentNumber)
	set.Add(KeyDocumentRemarks, ctx.DocumentRemarks)
	set.Add(KeyRepertoriumNote, ctx.RepertoriumNote)
	set.Add(KeyOralDate, ctx.OralDate)
	set.Add(KeyOralPlace, ctx.OralPlace)
	set.Add(KeyOralDuration, ctx.OralDuration)
	set.Add(KeyOralScope, ctx.OralScope)
	set.Add(KeyRefusalDate, ctx.RefusalDate)
	set.Add(KeyRefusalOrgan, ctx.RefusalOrgan)
	set.Add(KeyRefusalReason, ctx.RefusalReason)

	columnIDs := make([]string, 0, len(ctx.CustomValues))
	for columnID := range ctx.CustomValues {
		columnIDs = append(columnIDs, columnID)
	}
	sort.Strings(columnIDs)
	for _, columnID := range columnIDs {
		set.Add(CustomColumnKey(columnID), ctx.CustomValues[columnID])
	}

	return set.Items()
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
