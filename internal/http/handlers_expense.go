package http

import (
	"errors"
	"net/http"
	"net/url"

	"despesas/internal/core"
	applog "despesas/internal/log"
)

// handleAddExpense creates a new expense from the add form and redirects
// back to the table.
func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	if err := r.ParseForm(); err != nil {
		s.redirectError(w, r, "Formato de requisição inválido.")
		return
	}

	in, err := parseExpenseForm(r)
	if err != nil {
		s.redirectError(w, r, userMessage(err))
		return
	}

	exp, err := s.book.Add(r.Context(), in.Title, in.Amount, in.Competency, in.Category)
	if err != nil {
		s.logger.Error("Failed adding expense", applog.FieldError, err)
		s.redirectError(w, r, userMessage(err))
		return
	}

	s.redirectNotice(w, r, "Despesa \""+exp.Title+"\" adicionada.")
}

// handleEditExpense replaces the descriptive fields of an existing expense.
func (s *Server) handleEditExpense(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	if err := r.ParseForm(); err != nil {
		s.redirectError(w, r, "Formato de requisição inválido.")
		return
	}

	id := r.Form.Get("id")
	if id == "" {
		s.redirectError(w, r, "Selecione uma despesa.")
		return
	}

	in, err := parseExpenseForm(r)
	if err != nil {
		s.redirectError(w, r, userMessage(err))
		return
	}

	exp, err := s.book.Edit(r.Context(), id, in.Title, in.Amount, in.Competency, in.Category)
	if err != nil {
		s.logger.Error("Failed editing expense", applog.FieldExpenseID, id, applog.FieldError, err)
		s.redirectError(w, r, userMessage(err))
		return
	}

	s.redirectNotice(w, r, "Despesa \""+exp.Title+"\" atualizada.")
}

// handleRecordPayment applies a partial or full payment to an expense.
func (s *Server) handleRecordPayment(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	if err := r.ParseForm(); err != nil {
		s.redirectError(w, r, "Formato de requisição inválido.")
		return
	}

	in, err := parsePaymentForm(r)
	if err != nil {
		s.redirectError(w, r, userMessage(err))
		return
	}

	exp, err := s.book.RecordPayment(r.Context(), in.ID, in.Amount, in.AllowOverpaySettle)
	if err != nil {
		if !errors.Is(err, core.ErrOverpayment) {
			s.logger.Error("Failed recording payment", applog.FieldExpenseID, in.ID, applog.FieldError, err)
		}
		s.redirectError(w, r, userMessage(err))
		return
	}

	if exp.Paid {
		s.redirectNotice(w, r, "Despesa \""+exp.Title+"\" quitada.")
		return
	}
	s.redirectNotice(w, r, "Pagamento registrado. Restante: "+core.FormatMoney(exp.Remaining())+".")
}

// handleDeleteExpense removes an expense permanently.
func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	if err := r.ParseForm(); err != nil {
		s.redirectError(w, r, "Formato de requisição inválido.")
		return
	}

	id := r.Form.Get("id")
	if id == "" {
		s.redirectError(w, r, "Selecione uma despesa.")
		return
	}

	if err := s.book.Delete(r.Context(), id); err != nil {
		s.logger.Error("Failed deleting expense", applog.FieldExpenseID, id, applog.FieldError, err)
		s.redirectError(w, r, userMessage(err))
		return
	}

	s.redirectNotice(w, r, "Despesa excluída.")
}

// handleReload discards in-memory state and re-reads the data file.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	if err := s.book.Reload(r.Context()); err != nil {
		s.logger.Error("Failed reloading ledger",
			applog.FieldOperation, applog.OpReload,
			applog.FieldError, err)
		s.redirectError(w, r, "Não foi possível recarregar os dados.")
		return
	}

	s.redirectNotice(w, r, "Dados recarregados.")
}

func (s *Server) redirectNotice(w http.ResponseWriter, r *http.Request, msg string) {
	http.Redirect(w, r, "/?aviso="+url.QueryEscape(msg), http.StatusSeeOther)
}

func (s *Server) redirectError(w http.ResponseWriter, r *http.Request, msg string) {
	http.Redirect(w, r, "/?erro="+url.QueryEscape(msg), http.StatusSeeOther)
}

// userMessage maps domain errors onto the short Portuguese notices shown
// above the table.
func userMessage(err error) string {
	switch {
	case errors.Is(err, core.ErrInvalidAmount):
		return "Valor inválido. Use algo como 1234,56."
	case errors.Is(err, core.ErrInvalidCompetency):
		return "Mês inválido. Use mm/aaaa (ex.: 10/2025)."
	case errors.Is(err, core.ErrInvalidCategory):
		return "Tipo inválido."
	case errors.Is(err, core.ErrNotFound):
		return "Despesa não encontrada."
	case errors.Is(err, core.ErrNotApplicable):
		return "Itens do tipo 'guardado' não têm pendência."
	case errors.Is(err, core.ErrAlreadySettled):
		return "Essa despesa já está totalmente paga."
	case errors.Is(err, core.ErrOverpayment):
		return "O valor excede o restante. Confirme para quitar a despesa."
	default:
		return "Não foi possível concluir a operação."
	}
}
