package ui

import "time"

const noticeTTL = 5 * time.Second

// notice is a transient message drawn below the listing.
type notice struct {
	text    string
	expires time.Time
}

func (n notice) live(now time.Time) bool {
	return n.text != "" && now.Before(n.expires)
}

func (m *Model) setInfo(message string) {
	m.notice = notice{text: message, expires: time.Now().Add(noticeTTL)}
}

// clearInfo drops the notice only after it has been shown for noticeTTL.
func (m *Model) clearInfo() {
	if !m.notice.live(time.Now()) {
		m.notice = notice{}
	}
}

func (m *Model) forceClearInfo() {
	m.notice = notice{}
}

func (m *Model) currentInfo() string {
	if !m.notice.live(time.Now()) {
		m.notice = notice{}
	}
	return m.notice.text
}
