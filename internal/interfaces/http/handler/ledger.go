package handler

import (
	"github.com/fieldpoint/backend/internal/domain/ledger"
	"github.com/fieldpoint/backend/internal/domain/shared"
	"github.com/fieldpoint/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// LedgerHandler exposes read access to the account catalog and the journal
type LedgerHandler struct {
	BaseHandler
	accounts ledger.AccountRepository
	journal  ledger.JournalEntryRepository
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(accounts ledger.AccountRepository, journal ledger.JournalEntryRepository) *LedgerHandler {
	return &LedgerHandler{accounts: accounts, journal: journal}
}

// RegisterRoutes registers ledger routes
func (h *LedgerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/ledger")
	group.GET("/accounts", h.ListAccounts)
	group.GET("/journal-entries", h.ListJournalEntries)
	group.GET("/journal-entries/:id", h.GetJournalEntry)
}

// AccountResponse represents a ledger account in API responses
type AccountResponse struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// JournalEntryResponse represents a journal entry in API responses
type JournalEntryResponse struct {
	ID              string `json:"id"`
	EntryDate       string `json:"entry_date"`
	Description     string `json:"description"`
	DebitAccountID  string `json:"debit_account_id"`
	CreditAccountID string `json:"credit_account_id"`
	Amount          string `json:"amount"`
}

// ListAccounts returns the account catalog
func (h *LedgerHandler) ListAccounts(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}
	req.Normalize()

	accounts, err := h.accounts.FindAll(c.Request.Context(), shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderDir: req.OrderDir,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp := make([]AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		resp = append(resp, AccountResponse{
			ID:   a.ID.String(),
			Code: a.Code,
			Name: a.Name,
			Type: a.Type.String(),
		})
	}
	h.Success(c, resp)
}

// ListJournalEntries returns journal entries, newest first by default
func (h *LedgerHandler) ListJournalEntries(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}
	req.Normalize()

	entries, err := h.journal.FindAll(c.Request.Context(), shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderDir: req.OrderDir,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp := make([]JournalEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, toJournalEntryResponse(&e))
	}
	h.Success(c, resp)
}

// GetJournalEntry returns one journal entry by id
func (h *LedgerHandler) GetJournalEntry(c *gin.Context) {
	entryID, ok := parseIDParam(c)
	if !ok {
		return
	}

	entry, err := h.journal.FindByID(c.Request.Context(), entryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toJournalEntryResponse(entry))
}

// toJournalEntryResponse maps a journal entry to its API shape
func toJournalEntryResponse(e *ledger.JournalEntry) JournalEntryResponse {
	return JournalEntryResponse{
		ID:              e.ID.String(),
		EntryDate:       e.EntryDate.Format("2006-01-02"),
		Description:     e.Description,
		DebitAccountID:  e.DebitAccountID.String(),
		CreditAccountID: e.CreditAccountID.String(),
		Amount:          e.Amount.String(),
	}
}
