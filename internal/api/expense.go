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

func (s *APIServer) addExpenseHandler() identityHandler {
	return func(w http.ResponseWriter, r *http.Request, id models.Identity) {
		var req recordRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeDecodeError(w, err)
			return
		}

		category := strings.TrimSpace(req.Category)
		if category == "" || !req.Amount.present() || strings.TrimSpace(req.Date) == "" {
			writeMessage(w, http.StatusBadRequest, msgAllFieldsRequired)
			return
		}

		date, err := parseDate(req.Date)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, msgInvalidDate)
			return
		}

		expense := models.Expense{
			UserID:    id.UserID,
			Icon:      req.Icon,
			Category:  category,
			Amount:    req.Amount.value,
			Date:      date,
			CreatedAt: s.now().UTC(),
		}
		if err := s.storage.SaveExpense(r.Context(), &expense); err != nil {
			s.serverError(w, r, "Failed to save expense", err)
			return
		}

		s.logger.Info("Expense added", slog.String("user", id.UserID), slog.String("id", expense.ID))
		writeJSON(w, http.StatusOK, expense)
	}
}

func (s *APIServer) listExpenseHandler() identityHandler {
	return func(w http.ResponseWriter, r *http.Request, id models.Identity) {
		expenses, err := s.storage.ListExpense(r.Context(), id.UserID)
		if err != nil {
			s.serverError(w, r, "Failed to list expense", err)
			return
		}
		if expenses == nil {
			expenses = []models.Expense{}
		}

		writeJSON(w, http.StatusOK, expenses)
	}
}

func (s *APIServer) deleteExpenseHandler() identityHandler {
	return func(w http.ResponseWriter, r *http.Request, id models.Identity) {
		recordID := mux.Vars(r)["id"]

		err := s.storage.DeleteExpense(r.Context(), id.UserID, recordID)
		if errors.Is(err, storage.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "Expense not found")
			return
		}
		if err != nil {
			s.serverError(w, r, "Failed to delete expense", err)
			return
		}

		s.logger.Info("Expense deleted", slog.String("user", id.UserID), slog.String("id", recordID))
		writeMessage(w, http.StatusOK, "Expense deleted successfully")
	}
}

func (s *APIServer) downloadExpenseHandler() identityHandler {
	return func(w http.ResponseWriter, r *http.Request, id models.Identity) {
		expenses, err := s.storage.ListExpense(r.Context(), id.UserID)
		if err != nil {
			s.serverError(w, r, "Failed to list expense for export", err)
			return
		}

		rows := make([]export.Row, 0, len(expenses))
		for _, e := range expenses {
			rows = append(rows, export.Row{Label: e.Category, Amount: e.Amount, Date: e.Date})
		}

		s.sendWorkbook(w, r, workbookSpec{
			sheet:    "Expense",
			header:   "Category",
			prefix:   "expense_" + id.UserID,
			filename: "expense_details.xlsx",
		}, rows)
	}
}
