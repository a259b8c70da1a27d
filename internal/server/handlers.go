package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/abhisek/karuta/internal/poem"
	"github.com/abhisek/karuta/internal/quiz"
	"github.com/abhisek/karuta/internal/report"
	"github.com/abhisek/karuta/internal/router"
	"github.com/abhisek/karuta/internal/session"
)

type sessionHandler func(w http.ResponseWriter, r *http.Request, id string, c *session.Controller)

// withSession resolves the caller's session from the X-Session-ID header or
// the session cookie and runs h while holding that session's lock.
func (s *Server) withSession(h sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(sessionHeader)
		if id == "" {
			// A cookie that fails to decode yields a fresh, empty session.
			sess, _ := s.cookies.Get(r, cookieName)
			id, _ = sess.Values[cookieKey].(string)
		}
		if id == "" {
			writeError(w, http.StatusNotFound, errors.New("no session; create one with POST /api/v1/sessions"))
			return
		}
		e, ok := s.registry.get(id)
		if !ok {
			writeError(w, http.StatusNotFound, fmt.Errorf("unknown session %q", id))
			return
		}

		e.mu.Lock()
		defer e.mu.Unlock()
		h(w, r, id, e.ctrl)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"poems":    s.repo.Len(),
		"sessions": s.registry.len(),
	})
}

func (s *Server) handleListPoems(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	poems := s.repo.All()
	if q := query.Get("q"); q != "" {
		poems = s.repo.Search(q)
	}
	if d := query.Get("difficulty"); d != "" {
		diff, err := poem.ParseDifficulty(d)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		poems = slices.DeleteFunc(slices.Clone(poems), func(p poem.Poem) bool {
			return !diff.Includes(p.Number)
		})
	}
	if poems == nil {
		poems = []poem.Poem{}
	}
	writeJSON(w, http.StatusOK, poems)
}

func (s *Server) handlePoemStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.repo.Stats())
}

func (s *Server) handleGetPoem(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(mux.Vars(r)["number"])
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid poem number"))
		return
	}
	p, err := s.repo.ByNumber(n)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	id, e := s.registry.add()

	sess, _ := s.cookies.Get(r, cookieName)
	sess.Values[cookieKey] = id
	if err := sess.Save(r, w); err != nil {
		s.logger.Error("save session cookie", "error", err)
		writeError(w, http.StatusInternalServerError, errors.New("could not save session"))
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	s.logger.Info("session created", "session", id, "quiz_id", e.ctrl.ID())
	w.Header().Set(sessionHeader, id)
	writeJSON(w, http.StatusCreated, newSessionView(id, e.ctrl))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request, id string, c *session.Controller) {
	writeJSON(w, http.StatusOK, newSessionView(id, c))
}

func (s *Server) handleStartQuiz(w http.ResponseWriter, r *http.Request, id string, c *session.Controller) {
	settings := c.Defaults()
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
			return
		}
	}
	if err := c.StartNewQuiz(&settings); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusCreated, newSessionView(id, c))
}

func (s *Server) handleQuestion(w http.ResponseWriter, r *http.Request, id string, c *session.Controller) {
	q, err := c.CurrentQuestion()
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, newQuestionView(c, q))
}

func (s *Server) handleHint(w http.ResponseWriter, r *http.Request, id string, c *session.Controller) {
	hint, err := c.UseHint()
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"hint": hint})
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request, id string, c *session.Controller) {
	var a session.Answer
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if a.Index == nil && a.Text == nil {
		writeError(w, http.StatusBadRequest, errors.New("answer_index or answer_text is required"))
		return
	}
	s.judge(w, c, a)
}

func (s *Server) handleSkip(w http.ResponseWriter, r *http.Request, id string, c *session.Controller) {
	s.judge(w, c, session.Answer{})
}

func (s *Server) judge(w http.ResponseWriter, c *session.Controller, a session.Answer) {
	res, err := c.SubmitAnswer(a)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	v := answerView{Result: res, CorrectIndex: res.CorrectIndex}
	if last, ok := c.LastResult(); ok && c.Quiz().Settings.ShowExplanations {
		v.Explanation = last.Question.Explanation
	}
	v.Progress, _ = c.Progress()
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request, id string, c *session.Controller) {
	done, err := c.AdvanceQuestion()
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, nextView{Completed: done, Screen: c.Screen()})
}

func (s *Server) handleInterrupt(w http.ResponseWriter, r *http.Request, id string, c *session.Controller) {
	writeJSON(w, http.StatusOK, transition(c, c.HandleQuizInterruption()))
}

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request, id string, c *session.Controller) {
	writeJSON(w, http.StatusOK, transition(c, c.RestartQuiz()))
}

func (s *Server) handleConfirm(w http.ResponseWriter, r *http.Request, id string, c *session.Controller) {
	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if _, ok := c.PendingConfirmation(); !ok {
		writeError(w, http.StatusConflict, errors.New("nothing to confirm"))
		return
	}
	writeJSON(w, http.StatusOK, transition(c, c.Confirm(req.Accept)))
}

func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request, id string, c *session.Controller) {
	var req navigateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	to, err := router.ParseScreen(req.Screen)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, transition(c, c.Navigate(to, req.Force)))
}

func (s *Server) handleBack(w http.ResponseWriter, r *http.Request, id string, c *session.Controller) {
	writeJSON(w, http.StatusOK, transition(c, c.Back()))
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request, id string, c *session.Controller) {
	res, err := c.Results()
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleExportJSON(w http.ResponseWriter, r *http.Request, id string, c *session.Controller) {
	w.Header().Set("Content-Type", report.FormatJSON.ContentType())
	if err := report.WriteJSON(w, c.Export()); err != nil {
		s.logger.Error("write export", "error", err)
	}
}

func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request, id string, c *session.Controller) {
	w.Header().Set("Content-Type", report.FormatXLSX.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "karuta-"+c.ID()+".xlsx"))
	if err := report.WriteXLSX(w, c.Export()); err != nil {
		s.logger.Error("write export", "error", err)
	}
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var serr *session.SettingsError
	switch {
	case errors.As(err, &serr):
		return http.StatusBadRequest
	case errors.Is(err, poem.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrNoQuiz),
		errors.Is(err, session.ErrNoQuestion),
		errors.Is(err, session.ErrAlreadyAnswered),
		errors.Is(err, session.ErrQuizCompleted),
		errors.Is(err, session.ErrHintsDisabled),
		errors.Is(err, quiz.ErrExhausted):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, status int, err error) {
	resp := errorResponse{Error: err.Error()}
	var serr *session.SettingsError
	if errors.As(err, &serr) {
		resp.Fields = serr.Fields
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
