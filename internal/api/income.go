package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/IlyasAtabaev731/expense-tracker/internal/domain/models"
	"github.com/IlyasAtabaev731/expense-tracker/internal/export"
	"github.com/IlyasAtabaev731/expense-tracker/internal/storage"
	"github.com/gorilla/mux"
)

func (s *APIServer) addIncomeHandler() identityHandler {
	return func(w http.ResponseWriter, r *http.Request, id models.Identity) {
		var req recordRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeDecodeError(w, err)
			return
		}

		source := strings.TrimSpace(req.Source)
		if source == "" || !req.Amount.present() || strings.TrimSpace(req.Date) == "" {
			writeMessage(w, http.StatusBadRequest, msgAllFieldsRequired)
			return
		}

		date, err := parseDate(req.Date)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, msgInvalidDate)
			return
		}

		income := models.Income{
			UserID:    id.UserID,
			Icon:      req.Icon,
			Source:    source,
			Amount:    req.Amount.value,
			Date:      date,
			CreatedAt: s.now().UTC(),
		}
		if err := s.storage.SaveIncome(r.Context(), &income); err != nil {
			s.serverError(w, r, "Failed to save income", err)
			return
		}

		s.logger.Info("Income added", slog.String("user", id.UserID), slog.String("id", income.ID))
		writeJSON(w, http.StatusOK, income)
	}
}

func (s *APIServer) listIncomeHandler() identityHandler {
	return func(w http.ResponseWriter, r *http.Request, id models.Identity) {
		incomes, err := s.storage.ListIncome(r.Context(), id.UserID)
		if err != nil {
			s.serverError(w, r, "Failed to list income", err)
			return
		}
		if incomes == nil {
			incomes = []models.Income{}
		}

		writeJSON(w, http.StatusOK, incomes)
	}
}

func (s *APIServer) deleteIncomeHandler() identityHandler {
	return func(w http.ResponseWriter, r *http.Request, id models.Identity) {
		recordID := mux.Vars(r)["id"]

		err := s.storage.DeleteIncome(r.Context(), id.UserID, recordID)
		if errors.Is(err, storage.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "Income not found")
			return
		}
		if err != nil {
			s.serverError(w, r, "Failed to delete income", err)
			return
		}

		s.logger.Info("Income deleted", slog.String("user", id.UserID), slog.String("id", recordID))
		writeMessage(w, http.StatusOK, "Income deleted successfully")
	}
}

func (s *APIServer) downloadIncomeHandler() identityHandler {
	return func(w http.ResponseWriter, r *http.Request, id models.Identity) {
		incomes, err := s.storage.ListIncome(r.Context(), id.UserID)
		if err != nil {
			s.serverError(w, r, "Failed to list income for export", err)
			return
		}

		rows := make([]export.Row, 0, len(incomes))
		for _, i := range incomes {
			rows = append(rows, export.Row{Label: i.Source, Amount: i.Amount, Date: i.Date})
		}

		s.sendWorkbook(w, r, workbookSpec{
			sheet:    "Income",
			header:   "Source",
			prefix:   "income_" + id.UserID,
			filename: "income_details.xlsx",
		}, rows)
	}
}
