package service

import (
	"context"
	"errors"
	"testing"

	"ai-docchat-be/internal/entity"
	"ai-docchat-be/internal/repository/specification"

	"github.com/google/uuid"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func newTestSessionService(uow *fakeUow) ISessionService {
	return NewSessionService(&fakeFactory{uow: uow}, nil, nil, nil, nopLogger{})
}

func hasActiveFilter(specs []specification.Specification) bool {
	for _, s := range specs {
		if _, ok := s.(specification.ActiveSessions); ok {
			return true
		}
	}
	return false
}

func TestGetAllFiltersInactiveForRegularUsers(t *testing.T) {
	uow := &fakeUow{
		session: &entity.ChatSession{Id: uuid.New(), AdminId: uuid.New(), IsActive: true},
	}
	svc := newTestSessionService(uow)

	if _, err := svc.GetAll(context.Background(), uuid.New(), false); err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if !hasActiveFilter(uow.findAllSpecs) {
		t.Error("regular user listing must filter to active sessions")
	}
}

func TestGetAllShowsEverythingToAdmins(t *testing.T) {
	uow := &fakeUow{
		session: &entity.ChatSession{Id: uuid.New(), AdminId: uuid.New(), IsActive: false},
	}
	svc := newTestSessionService(uow)

	if _, err := svc.GetAll(context.Background(), uuid.New(), true); err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if hasActiveFilter(uow.findAllSpecs) {
		t.Error("admin listing must not filter out inactive sessions")
	}
}

func TestShowAccessRule(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()

	tests := []struct {
		name       string
		callerId   uuid.UUID
		isAdmin    bool
		active     bool
		wantDenied bool
	}{
		{"owner sees inactive session", owner, false, false, false},
		{"admin sees inactive session", stranger, true, false, false},
		{"stranger sees active session", stranger, false, true, false},
		{"stranger denied inactive session", stranger, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uow := &fakeUow{
				session: &entity.ChatSession{Id: uuid.New(), AdminId: owner, IsActive: tt.active},
			}
			svc := newTestSessionService(uow)

			res, err := svc.Show(context.Background(), tt.callerId, tt.isAdmin, uow.session.Id)
			if tt.wantDenied {
				if !errors.Is(err, ErrAccessDenied) {
					t.Fatalf("err = %v, want ErrAccessDenied", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Show() error = %v", err)
			}
			if res == nil {
				t.Fatal("Show() returned nil for accessible session")
			}
		})
	}
}
