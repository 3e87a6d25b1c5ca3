package store

import "time"

// showNotice replaces the current notice and arms its auto-dismiss timer.
// Must be called with mu held.
func (s *Store) showNotice(message string, success bool) {
	s.noticeSeq++
	s.state.Notice = &Notice{Message: message, Visible: true, Success: success}

	if s.noticeTimer != nil {
		s.noticeTimer.Stop()
	}
	if s.closed {
		return
	}
	seq := s.noticeSeq
	s.noticeTimer = time.AfterFunc(s.config.NoticeTTL, func() {
		s.expireNotice(seq)
	})
}

// expireNotice hides the notice identified by seq unless a newer one replaced it.
func (s *Store) expireNotice(seq uint64) {
	s.update(func(st *ViewState) bool {
		if seq != s.noticeSeq || !st.NoticeVisible() {
			return false
		}
		st.Notice.Visible = false
		return true
	})
}
