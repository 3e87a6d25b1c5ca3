package store

import (
	"context"
	"slices"

	"github.com/saturnino-fabrica-de-software/facerecon/internal/domain"
)

// CheckHealth asks the backend for its health status.
func (s *Store) CheckHealth(ctx context.Context) ViewState {
	token := s.begin(intentHealth, func(st *ViewState) {
		st.ErrorMessage = ""
	})

	res := s.coord.CheckHealth(ctx)

	snap := s.finish(intentHealth, token, func(st *ViewState) {
		if res.IsOk() {
			h := res.Value()
			st.Health = &h
			st.ErrorMessage = ""
			return
		}
		st.Health = nil
		st.ErrorMessage = "Backend connection failed: " + res.Reason().Message()
	})
	return snap
}

// CaptureAndRecognize uploads a captured image and records the recognition outcome.
// The previous outcome and alert are cleared as soon as the call starts.
func (s *Store) CaptureAndRecognize(ctx context.Context, image []byte) ViewState {
	token := s.begin(intentRecognize, func(st *ViewState) {
		st.LastRecognition = nil
		st.AlertActive = false
		st.ErrorMessage = ""
	})

	res := s.coord.Recognize(ctx, image)

	snap := s.finish(intentRecognize, token, func(st *ViewState) {
		if !res.IsOk() {
			st.ErrorMessage = res.Reason().Message()
			return
		}
		rec := res.Value()
		st.LastRecognition = &rec
		st.AlertActive = rec.EffectiveAlert()
		st.ErrorMessage = ""
	})
	return snap
}

// LoadUsers replaces the user list with the backend's. On failure the last
// good list stays visible.
func (s *Store) LoadUsers(ctx context.Context) ViewState {
	return s.loadUsers(ctx, s.begin(intentLoadUsers, nil))
}

func (s *Store) loadUsers(ctx context.Context, token uint64) ViewState {
	res := s.coord.ListUsers(ctx)

	return s.finish(intentLoadUsers, token, func(st *ViewState) {
		if !res.IsOk() {
			st.ErrorMessage = "Failed to load users: " + res.Reason().Message()
			return
		}
		st.Users = slices.Clone(res.Value())
		st.ErrorMessage = ""
	})
}

// LoadUser fetches a single user into SelectedUser.
func (s *Store) LoadUser(ctx context.Context, id string) ViewState {
	token := s.begin(intentLoadUser, nil)

	res := s.coord.GetUser(ctx, id)

	snap := s.finish(intentLoadUser, token, func(st *ViewState) {
		if !res.IsOk() {
			st.SelectedUser = nil
			st.ErrorMessage = "Failed to load user: " + res.Reason().Message()
			return
		}
		u := res.Value()
		st.SelectedUser = &u
		st.ErrorMessage = ""
	})
	return snap
}

// RegisterUser creates a user with a reference photo. Fields must already be
// validated by the caller. The outcome is reported through a notice; on success
// the list is resynchronized from the backend.
func (s *Store) RegisterUser(ctx context.Context, fields domain.UserFields, image []byte) ViewState {
	token := s.begin(intentRegister, nil)

	res := s.coord.CreateUser(ctx, fields, image)
	if !res.IsOk() {
		return s.finish(intentRegister, token, func(*ViewState) {
			s.showNotice("Error registering user: "+res.Reason().Message(), false)
		})
	}

	reload := s.handOff(intentRegister, token, func(st *ViewState) {
		u := res.Value()
		st.Users = append(st.Users, u)
		st.ErrorMessage = ""
		s.showNotice("User registered successfully: "+u.FullName(), true)
	})
	return s.loadUsers(ctx, reload)
}

// UpdateUser edits a user and then reloads the list; the list is never patched locally.
func (s *Store) UpdateUser(ctx context.Context, id string, fields domain.UserFields) ViewState {
	token := s.begin(intentUpdate, nil)

	res := s.coord.UpdateUser(ctx, id, fields)
	if !res.IsOk() {
		return s.finish(intentUpdate, token, func(st *ViewState) {
			st.ErrorMessage = "Failed to update user: " + res.Reason().Message()
		})
	}

	reload := s.handOff(intentUpdate, token, func(st *ViewState) {
		u := res.Value()
		st.LastUpdatedUser = &u
		st.ErrorMessage = ""
	})
	return s.loadUsers(ctx, reload)
}

// DeleteUser removes a user and then reloads the list.
func (s *Store) DeleteUser(ctx context.Context, id string) ViewState {
	token := s.begin(intentDelete, nil)

	res := s.coord.DeleteUser(ctx, id)
	if !res.IsOk() {
		return s.finish(intentDelete, token, func(st *ViewState) {
			st.ErrorMessage = "Failed to delete user: " + res.Reason().Message()
		})
	}

	reload := s.handOff(intentDelete, token, func(st *ViewState) {
		if st.SelectedUser != nil && st.SelectedUser.ID == id {
			st.SelectedUser = nil
		}
		st.ErrorMessage = ""
	})
	return s.loadUsers(ctx, reload)
}

// DismissAlert acknowledges the current alert.
func (s *Store) DismissAlert() ViewState {
	return s.update(func(st *ViewState) bool {
		if !st.AlertActive {
			return false
		}
		st.AlertActive = false
		return true
	})
}

// DismissError clears the error message.
func (s *Store) DismissError() ViewState {
	return s.update(func(st *ViewState) bool {
		if st.ErrorMessage == "" {
			return false
		}
		st.ErrorMessage = ""
		return true
	})
}

// DismissNotice hides the current notice before its timer does.
func (s *Store) DismissNotice() ViewState {
	return s.update(func(st *ViewState) bool {
		if !st.NoticeVisible() {
			return false
		}
		st.Notice.Visible = false
		if s.noticeTimer != nil {
			s.noticeTimer.Stop()
		}
		return true
	})
}

// ClearResult drops the last recognition outcome and its alert.
func (s *Store) ClearResult() ViewState {
	return s.update(func(st *ViewState) bool {
		if st.LastRecognition == nil && !st.AlertActive {
			return false
		}
		st.LastRecognition = nil
		st.AlertActive = false
		return true
	})
}
