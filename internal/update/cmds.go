package update

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Simenb123/revy-actions/internal/list"
	"github.com/Simenb123/revy-actions/internal/model"
	"github.com/Simenb123/revy-actions/internal/storage"
	"github.com/Simenb123/revy-actions/internal/writeback"
)

const queryDebounce = 250 * time.Millisecond

func loadActionsCmd(store storage.Store, scopeID string) tea.Cmd {
	return func() tea.Msg {
		items, err := store.ListActions(context.Background(), scopeID)
		return ActionsLoadedMsg{Items: items, Err: err}
	}
}

func bulkStatusCmd(coord *list.Coordinator, ids []string, status model.Status) tea.Cmd {
	return func() tea.Msg {
		err := coord.ApplyStatus(context.Background(), ids, status)
		return BulkResultMsg{Kind: list.MutationStatus, IDs: ids, Err: err}
	}
}

func bulkDeleteCmd(coord *list.Coordinator, ids []string) tea.Cmd {
	return func() tea.Msg {
		err := coord.ApplyDelete(context.Background(), ids)
		return BulkResultMsg{Kind: list.MutationDelete, IDs: ids, Err: err}
	}
}

func saveActionCmd(store storage.Store, a model.Action) tea.Cmd {
	return func() tea.Msg {
		saved, err := store.UpdateAction(context.Background(), a)
		return ActionSavedMsg{Action: saved, Err: err}
	}
}

func waitWritebackCmd(ch <-chan writeback.Result) tea.Cmd {
	return func() tea.Msg {
		res, ok := <-ch
		if !ok {
			return nil
		}
		return WritebackResultMsg{Result: res}
	}
}

func debounceQueryCmd(seq int) tea.Cmd {
	return tea.Tick(queryDebounce, func(time.Time) tea.Msg {
		return QueryDebounceMsg{Seq: seq}
	})
}
