package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"grantflow/internal/remark"
	"grantflow/internal/remark/handler/mocks"
	"grantflow/internal/stage"
	id "grantflow/pkg/domain"
	dErrors "grantflow/pkg/domain-errors"
	"grantflow/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/remark-mocks.go -package=mocks Service
type RemarkHandlerSuite struct {
	suite.Suite
	actorID   id.UserID
	projectID id.ProjectID
}

func (s *RemarkHandlerSuite) SetupSuite() {
	s.actorID = id.UserID(uuid.New())
	s.projectID = id.ProjectID(uuid.New())
}

func TestRemarkHandlerSuite(t *testing.T) {
	suite.Run(t, new(RemarkHandlerSuite))
}

func newTestRouter(t *testing.T) (chi.Router, *mocks.MockService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockService := mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := chi.NewRouter()
	New(mockService, logger).Register(r)
	return r, mockService
}

func (s *RemarkHandlerSuite) serve(router chi.Router, method, path string, authenticated bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if authenticated {
		req = req.WithContext(requestcontext.WithActorID(context.Background(), s.actorID))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func (s *RemarkHandlerSuite) sampleRemark() *remark.Remark {
	return &remark.Remark{
		ID:              id.NewRemarkID(),
		ProjectID:       s.projectID,
		Message:         "verify annex two",
		AssignedTo:      s.actorID,
		CreatedBy:       id.UserID(uuid.New()),
		Status:          remark.StatusTodo,
		StageAtCreation: stage.InternalReview,
		CreatedAt:       time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC),
	}
}

func (s *RemarkHandlerSuite) TestHandleListByProject() {
	router, mockService := newTestRouter(s.T())
	rm := s.sampleRemark()
	mockService.EXPECT().ListByProject(gomock.Any(), s.projectID).Return([]*remark.Remark{rm}, nil)

	rec := s.serve(router, http.MethodGet, "/projects/"+s.projectID.String()+"/remarks", false)

	s.Equal(http.StatusOK, rec.Code)
	var resp ListResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Require().Len(resp.Remarks, 1)
	s.Equal(rm.ID.String(), resp.Remarks[0].ID)
	s.Equal("todo", resp.Remarks[0].Status)
}

func (s *RemarkHandlerSuite) TestHandleListByProject_BadID() {
	router, _ := newTestRouter(s.T())

	rec := s.serve(router, http.MethodGet, "/projects/nope/remarks", false)

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RemarkHandlerSuite) TestHandleToggleStatus() {
	router, mockService := newTestRouter(s.T())
	rm := s.sampleRemark()
	rm.Status = remark.StatusDone
	mockService.EXPECT().ToggleStatus(gomock.Any(), rm.ID, s.actorID).Return(rm, nil)

	rec := s.serve(router, http.MethodPost, "/remarks/"+rm.ID.String()+"/toggle", true)

	s.Equal(http.StatusOK, rec.Code)
	var resp RemarkResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("done", resp.Status)
}

func (s *RemarkHandlerSuite) TestHandleToggleStatus_RequiresAuth() {
	router, _ := newTestRouter(s.T())

	rec := s.serve(router, http.MethodPost, "/remarks/"+id.NewRemarkID().String()+"/toggle", false)

	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *RemarkHandlerSuite) TestHandleToggleStatus_NotAssignee() {
	router, mockService := newTestRouter(s.T())
	remarkID := id.NewRemarkID()
	mockService.EXPECT().ToggleStatus(gomock.Any(), remarkID, s.actorID).
		Return(nil, dErrors.New(dErrors.CodeNotAssignee, "only the assignee may toggle a remark"))

	rec := s.serve(router, http.MethodPost, "/remarks/"+remarkID.String()+"/toggle", true)

	s.Equal(http.StatusForbidden, rec.Code)
}
