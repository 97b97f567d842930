package tui

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/handiism/tocadiscos/internal/catalog"
	"github.com/handiism/tocadiscos/internal/errors"
	"github.com/handiism/tocadiscos/internal/report"
	"github.com/handiism/tocadiscos/internal/search"
)

type menuID int

const (
	menuMain menuID = iota
	menuSearch
	menuAdmin
	menuPlayer
	menuHistory
)

type menuItem struct {
	label string
	run   func(m Model) (tea.Model, tea.Cmd)
}

func (m Model) menuTitle() string {
	switch m.menu {
	case menuSearch:
		return "Search"
	case menuAdmin:
		return "Administrator"
	case menuPlayer:
		return "Player"
	case menuHistory:
		return "History"
	default:
		return "Main menu"
	}
}

func (m Model) items() []menuItem {
	switch m.menu {
	case menuSearch:
		return []menuItem{
			{"List artists", func(m Model) (tea.Model, tea.Cmd) { return m.busy(m.listArtists()) }},
			{"List albums", func(m Model) (tea.Model, tea.Cmd) { return m.busy(m.listAlbums()) }},
			{"Find artist", func(m Model) (tea.Model, tea.Cmd) { return m.askSearch(search.TypeArtist) }},
			{"Find album", func(m Model) (tea.Model, tea.Cmd) { return m.askSearch(search.TypeAlbum) }},
			{"Find track", func(m Model) (tea.Model, tea.Cmd) { return m.askSearch(search.TypeTrack) }},
		}
	case menuAdmin:
		return []menuItem{
			{"Royalties by artist", Model.askArtistFinancials},
			{"Full report", Model.askFullReport},
			{"Add artist", Model.askAddArtist},
			{"Remove artist", Model.askRemoveArtist},
			{"Update royalty", Model.askUpdateRoyalty},
			{"Rebuild from raw tracks", func(m Model) (tea.Model, tea.Cmd) { return m.busy(m.precheckIngest()) }},
			{"Log out", func(m Model) (tea.Model, tea.Cmd) {
				m.app.Session.Logout()
				m.openMenu(menuMain)
				return m, nil
			}},
		}
	case menuPlayer:
		return []menuItem{
			{"Play track", Model.askPlay},
			{"Pause", func(m Model) (tea.Model, tea.Cmd) { return m.busy(m.playerControl("Paused", m.app.Player.Pause)) }},
			{"Resume", func(m Model) (tea.Model, tea.Cmd) { return m.busy(m.playerControl("Resumed", m.app.Player.Resume)) }},
			{"Stop", func(m Model) (tea.Model, tea.Cmd) { return m.busy(m.playerControl("Stopped", m.app.Player.Stop)) }},
		}
	case menuHistory:
		return []menuItem{
			{"View history", func(m Model) (tea.Model, tea.Cmd) { return m.busy(m.listHistory()) }},
			{"Undo last action", func(m Model) (tea.Model, tea.Cmd) { return m.busy(m.precheckUndo()) }},
		}
	default:
		return []menuItem{
			{"Search", func(m Model) (tea.Model, tea.Cmd) { m.openMenu(menuSearch); return m, nil }},
			{"Administrator", Model.enterAdmin},
			{"Player", func(m Model) (tea.Model, tea.Cmd) { m.openMenu(menuPlayer); return m, nil }},
			{"History", func(m Model) (tea.Model, tea.Cmd) { m.openMenu(menuHistory); return m, nil }},
		}
	}
}

func (m Model) busy(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	m.state = StateBusy
	return m, tea.Batch(cmd, m.spinner.Tick)
}

func (m Model) fail(title string, err error) tea.Msg {
	return resultMsg{Title: title, Err: err, Next: m.menu}
}

func (m Model) listArtists() tea.Cmd {
	return func() tea.Msg {
		c, err := m.app.Store.LoadCatalog(m.ctx)
		if err != nil {
			return m.fail("Could not load artists", err)
		}
		body := report.ArtistListing(c, m.app.Session.IsAuthorized()).String()
		return resultMsg{Title: fmt.Sprintf("%d artist(s)", len(c.Artists)), Body: body, Next: m.menu}
	}
}

func (m Model) listAlbums() tea.Cmd {
	return func() tea.Msg {
		c, err := m.app.Store.LoadCatalog(m.ctx)
		if err != nil {
			return m.fail("Could not load albums", err)
		}
		return resultMsg{Title: fmt.Sprintf("%d album(s)", len(c.Albums)), Body: report.AlbumListing(c).String(), Next: m.menu}
	}
}

func (m Model) askSearch(typ search.DocType) (tea.Model, tea.Cmd) {
	return m.ask("Search "+string(typ)+"s", []string{"Text"}, func(v []string) tea.Cmd {
		return func() tea.Msg {
			hits, err := m.app.Search(m.ctx, v[0], typ, search.DefaultLimit)
			if err != nil {
				return m.fail("Search failed", err)
			}
			if len(hits) == 0 {
				return resultMsg{Title: "No matches", Next: m.menu}
			}
			return resultMsg{Title: fmt.Sprintf("%d match(es)", len(hits)), Body: report.HitListing(hits).String(), Next: m.menu}
		}
	})
}

func (m Model) enterAdmin() (tea.Model, tea.Cmd) {
	if m.app.Session.IsAuthorized() {
		m.openMenu(menuAdmin)
		return m, nil
	}
	return m.ask("Administrator login", []string{"Username", "Password*"}, func(v []string) tea.Cmd {
		return func() tea.Msg {
			if err := m.app.Session.Login(v[0], v[1]); err != nil {
				return m.fail("Login failed", err)
			}
			if !m.app.Session.IsAuthorized() {
				m.app.Session.Logout()
				return m.fail("Login failed", errors.New("user is not an administrator"))
			}
			return gotoMsg{Menu: menuAdmin}
		}
	})
}

func (m Model) askArtistFinancials() (tea.Model, tea.Cmd) {
	return m.ask("Royalties by artist", []string{"Artist name"}, func(v []string) tea.Cmd {
		return func() tea.Msg {
			f, err := m.app.Reports.ComputeArtistFinancials(m.ctx, v[0])
			if err != nil {
				return m.fail("Could not compute royalties", err)
			}
			return resultMsg{Title: f.Artist, Body: report.FinancialsListing(f, m.app.Session.IsAuthorized()).String(), Next: m.menu}
		}
	})
}

func (m Model) askFullReport() (tea.Model, tea.Cmd) {
	return m.ask("Full report", []string{"Sort by (name or revenue)"}, func(v []string) tea.Cmd {
		return func() tea.Msg {
			key, err := report.ParseSortKey(v[0])
			if err != nil {
				return m.fail("Invalid sort order", err)
			}
			r, err := m.app.Reports.ComputeFullReport(m.ctx, key)
			if err != nil {
				return m.fail("Could not compute report", err)
			}
			return resultMsg{Title: "Full report", Body: r.Table().String(), Next: m.menu}
		}
	})
}

func (m Model) askAddArtist() (tea.Model, tea.Cmd) {
	return m.ask("Add artist", []string{"Name", "Nationality", "Royalty %"}, func(v []string) tea.Cmd {
		return func() tea.Msg {
			pct := m.app.Settings.DefaultRoyaltyPercentage
			if v[2] != "" {
				var err error
				if pct, err = strconv.ParseFloat(v[2], 64); err != nil {
					return m.fail("Invalid royalty percentage", errors.NewValidationError("rights_percentage", v[2], "must be a number"))
				}
			}
			a, err := m.app.Store.AddArtist(m.ctx, v[0], v[1], pct)
			if err != nil {
				return m.fail("Artist not added", err)
			}
			return resultMsg{Title: fmt.Sprintf("Added artist %q with id %d", a.Name, a.ID), Next: m.menu}
		}
	})
}

func (m Model) askRemoveArtist() (tea.Model, tea.Cmd) {
	return m.ask("Remove artist", []string{"Artist name"}, func(v []string) tea.Cmd {
		return func() tea.Msg {
			c, err := m.app.Store.LoadCatalog(m.ctx)
			if err != nil {
				return m.fail("Could not load catalog", err)
			}
			artist, ok := catalog.FindArtist(c.Artists, v[0])
			if !ok {
				return m.fail("Artist not removed", errors.NewNotFoundError("artist", v[0]))
			}
			albums := len(catalog.AlbumsForArtist(c.Albums, artist.Name))
			tracks := len(catalog.TracksForArtist(c.Tracks, artist.Name))
			question := fmt.Sprintf("Remove %q with %d album(s) and %d track(s)? (y/n)", artist.Name, albums, tracks)
			return confirmMsg{Question: question, Accept: func() tea.Cmd {
				return func() tea.Msg {
					res, err := m.app.Store.RemoveArtist(m.ctx, artist.Name, catalog.AlwaysConfirm)
					if err != nil {
						return m.fail("Artist not removed", err)
					}
					return resultMsg{
						Title: fmt.Sprintf("Removed %q, %d album(s), %d track(s)", res.Artist.Name, res.AlbumsRemoved, res.TracksRemoved),
						Next:  m.menu,
					}
				}
			}}
		}
	})
}

func (m Model) askUpdateRoyalty() (tea.Model, tea.Cmd) {
	return m.ask("Update royalty", []string{"Artist name", "Royalty %"}, func(v []string) tea.Cmd {
		return func() tea.Msg {
			pct, err := strconv.ParseFloat(v[1], 64)
			if err != nil {
				return m.fail("Invalid royalty percentage", errors.NewValidationError("rights_percentage", v[1], "must be a number"))
			}
			a, err := m.app.Store.UpdateArtistRoyalty(m.ctx, v[0], pct)
			if err != nil {
				return m.fail("Royalty not updated", err)
			}
			return resultMsg{Title: fmt.Sprintf("Royalty of %q is now %s", a.Name, report.Percent(a.RoyaltyPercentage)), Next: m.menu}
		}
	})
}

func (m Model) precheckIngest() tea.Cmd {
	return func() tea.Msg {
		return confirmMsg{
			Question: "Replace the authors and albums tables with ones derived from raw tracks? (y/n)",
			Accept: func() tea.Cmd {
				return func() tea.Msg {
					res, err := m.app.Ingest(m.ctx)
					if err != nil {
						return m.fail("Rebuild failed", err)
					}
					return resultMsg{
						Title: fmt.Sprintf("Rebuilt %d artist(s) and %d album(s), %d row(s) skipped", len(res.Artists), len(res.Albums), res.Skipped),
						Next:  m.menu,
					}
				}
			},
		}
	}
}

func (m Model) askPlay() (tea.Model, tea.Cmd) {
	return m.ask("Play track", []string{"Track title", "Album (optional)"}, func(v []string) tea.Cmd {
		return func() tea.Msg {
			t, err := m.app.PlayTrack(m.ctx, v[0], v[1])
			if err != nil {
				return m.fail("Cannot play", err)
			}
			return resultMsg{Title: fmt.Sprintf("Playing %q by %s", t.Title, t.ArtistName), Next: m.menu}
		}
	})
}

func (m Model) playerControl(done string, action func() error) tea.Cmd {
	return func() tea.Msg {
		if err := action(); err != nil {
			return m.fail("Player", err)
		}
		return resultMsg{Title: done, Next: m.menu}
	}
}

func (m Model) listHistory() tea.Cmd {
	return func() tea.Msg {
		entries, err := m.app.History.List(m.ctx)
		if err != nil {
			return m.fail("Could not read history", err)
		}
		if len(entries) == 0 {
			return resultMsg{Title: "History is empty", Next: m.menu}
		}
		return resultMsg{Title: fmt.Sprintf("%d snapshot(s)", len(entries)), Body: report.HistoryListing(entries).String(), Next: m.menu}
	}
}

func (m Model) precheckUndo() tea.Cmd {
	return func() tea.Msg {
		latest, ok, err := m.app.History.Latest(m.ctx)
		if err != nil {
			return m.fail("Could not read history", err)
		}
		if !ok {
			return resultMsg{Title: "History is empty", Body: "There is nothing to undo.", Next: m.menu}
		}
		return confirmMsg{
			Question: fmt.Sprintf("Undo %q from %s? (y/n)", latest.Metadata.Action, latest.Metadata.Timestamp.Local().Format("2006-01-02 15:04:05")),
			Accept: func() tea.Cmd {
				return func() tea.Msg {
					if err := m.app.History.Revert(m.ctx, latest.Name); err != nil {
						return m.fail("Undo failed", err)
					}
					return resultMsg{Title: "Restored " + latest.Name, Next: m.menu}
				}
			},
		}
	}
}
