package actions

import (
	"context"
	"fmt"
	"strings"

	"github.com/gwork/gwork-cli/internal/gapi"
	"github.com/gwork/gwork-cli/internal/nav"
)

var gmailService = service{
	name: "Gmail",
	actions: []Action{
		{Name: "Inbox", Run: gmailList("in:inbox")},
		{
			Name:   "Search",
			Fields: []nav.Field{field("Search Query", "from:someone@gmail.com", true)},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				return gmailList(fieldVal(st, 0))(ctx, d, st)
			},
		},
		{
			Name: "Compose",
			Fields: []nav.Field{
				field("To", "recipient@example.com", true),
				field("Subject", "Email subject", true),
				field("CC", "cc@example.com", false),
				field("BCC", "bcc@example.com", false),
				multilineField("Body", "Type your message...", true),
			},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				raw := gapi.BuildRawEmail(fieldVal(st, 0), fieldVal(st, 1), fieldVal(st, 4), fieldVal(st, 2), fieldVal(st, 3))
				if _, err := d.gmail.SendMessage(ctx, raw); err != nil {
					return "", err
				}
				st.ReturnToActions()
				return "email sent", nil
			},
		},
		{Name: "Labels", Run: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
			val, err := d.gmail.ListLabels(ctx)
			if err != nil {
				return "", err
			}
			var items []nav.Item
			for _, l := range arr(val, "labels") {
				sub := str(l, "type")
				if sub == "" {
					sub = "user"
				}
				items = append(items, nav.Item{ID: str(l, "id"), Title: str(l, "name"), Subtitle: sub})
			}
			st.ShowItems(items, "")
			return fmt.Sprintf("%d labels", len(items)), nil
		}},
		{Name: "Drafts", Run: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
			val, err := d.gmail.ListDrafts(ctx, 20, "")
			if err != nil {
				return "", err
			}
			var items []nav.Item
			for _, dr := range arr(val, "drafts") {
				items = append(items, nav.Item{ID: str(dr, "id"), Title: "Draft " + str(dr, "id"), Subtitle: "draft message"})
			}
			st.ShowItems(items, str(val, "nextPageToken"))
			return fmt.Sprintf("%d drafts", len(items)), nil
		}},
		{Name: "Threads", Run: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
			val, err := d.gmail.ListThreads(ctx, "", 20, "")
			if err != nil {
				return "", err
			}
			var items []nav.Item
			for _, t := range arr(val, "threads") {
				items = append(items, nav.Item{ID: str(t, "id"), Title: "Thread " + str(t, "id"), Subtitle: truncate(str(t, "snippet"), 80)})
			}
			st.ShowItems(items, str(val, "nextPageToken"))
			return fmt.Sprintf("%d threads", len(items)), nil
		}},
		{Name: "Filters", Run: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
			val, err := d.gmail.ListFilters(ctx)
			if err != nil {
				return "", err
			}
			var items []nav.Item
			for _, f := range arr(val, "filter") {
				items = append(items, nav.Item{ID: str(f, "id"), Title: "Filter " + str(f, "id"), Subtitle: "mail filter"})
			}
			st.ShowItems(items, "")
			return fmt.Sprintf("%d filters", len(items)), nil
		}},
		{Name: "Settings", Run: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
			val, err := d.gmail.GetVacationSettings(ctx)
			if err != nil {
				return "", err
			}
			st.ShowItems(nil, "")
			st.ShowDetail(detailJSON(val))
			return "vacation settings loaded", nil
		}},
		{Name: "Forwarding", Run: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
			val, err := d.gmail.ListForwardingAddresses(ctx)
			if err != nil {
				return "", err
			}
			var items []nav.Item
			for _, a := range arr(val, "forwardingAddresses") {
				items = append(items, nav.Item{ID: str(a, "forwardingEmail"), Title: str(a, "forwardingEmail"), Subtitle: str(a, "verificationStatus")})
			}
			st.ShowItems(items, "")
			return fmt.Sprintf("%d forwarding addresses", len(items)), nil
		}},
		{Name: "Send-As", Run: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
			val, err := d.gmail.ListSendAs(ctx)
			if err != nil {
				return "", err
			}
			var items []nav.Item
			for _, a := range arr(val, "sendAs") {
				items = append(items, nav.Item{ID: str(a, "sendAsEmail"), Title: str(a, "sendAsEmail"), Subtitle: str(a, "displayName")})
			}
			st.ShowItems(items, "")
			return fmt.Sprintf("%d send-as aliases", len(items)), nil
		}},
		{Name: "Delegates", Run: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
			val, err := d.gmail.ListDelegates(ctx)
			if err != nil {
				return "", err
			}
			var items []nav.Item
			for _, dl := range arr(val, "delegates") {
				items = append(items, nav.Item{ID: str(dl, "delegateEmail"), Title: str(dl, "delegateEmail"), Subtitle: str(dl, "verificationStatus")})
			}
			st.ShowItems(items, "")
			return fmt.Sprintf("%d delegates", len(items)), nil
		}},
		{
			Name:   "Unified Search",
			Fields: []nav.Field{field("Search Query (all accounts)", "from:someone@gmail.com", true)},
			Submit: gmailUnifiedSearch,
		},
	},
	detail: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
		it := st.SelectedItem()
		val, err := d.gmail.GetMessage(ctx, it.ID, "full")
		if err != nil {
			return "", err
		}
		st.ShowDetail(detailJSON(val))
		return "message loaded", nil
	},
	remove: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
		it := st.SelectedItem()
		if _, err := d.gmail.TrashMessage(ctx, it.ID); err != nil {
			return "", err
		}
		st.RemoveSelectedItem()
		return "message moved to trash", nil
	},
}

// gmailList builds a listing handler for a fixed query and wires load-more
// to re-issue it with the page token.
func gmailList(q string) handler {
	return func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
		val, err := d.gmail.ListMessages(ctx, q, 20, "")
		if err != nil {
			return "", err
		}
		items, next := gmailMessageItems(val, "")
		st.ShowItems(items, next)
		d.more = func(ctx context.Context, st *nav.State) (string, error) {
			val, err := d.gmail.ListMessages(ctx, q, 20, st.NextPageToken)
			if err != nil {
				return "", err
			}
			items, next := gmailMessageItems(val, "")
			st.AppendItems(items, next)
			return fmt.Sprintf("%d messages loaded", len(st.Items)), nil
		}
		return fmt.Sprintf("%d messages loaded", len(items)), nil
	}
}

func gmailMessageItems(val map[string]any, label string) ([]nav.Item, string) {
	var items []nav.Item
	for _, m := range arr(val, "messages") {
		id := str(m, "id")
		title := "Message " + truncate(id, 12)
		if label != "" {
			title = fmt.Sprintf("[%s] %s", label, title)
		}
		items = append(items, nav.Item{
			ID:       id,
			Title:    title,
			Subtitle: truncate(str(m, "snippet"), 80),
			Account:  label,
		})
	}
	return items, str(val, "nextPageToken")
}

// gmailUnifiedSearch fans the same query out across every configured
// account, tags results with their origin, and always restores the account
// that was active before the search began. Partial failures are folded into
// the status line rather than aborting the rest.
func gmailUnifiedSearch(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
	query := fieldVal(st, 0)
	original := d.s.ActiveAccountName()
	names := d.s.AccountNames()

	var all []nav.Item
	var failures []string
	for _, name := range names {
		if name != original {
			if err := d.s.SwitchAccount(name); err != nil {
				failures = append(failures, fmt.Sprintf("%s: %v", name, err))
				continue
			}
		}
		label := d.s.ActiveAccountLabel()
		val, err := d.gmail.ListMessages(ctx, query, 10, "")
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", label, err))
			continue
		}
		items, _ := gmailMessageItems(val, label)
		all = append(all, items...)
	}
	if d.s.ActiveAccountName() != original {
		if err := d.s.SwitchAccount(original); err != nil {
			failures = append(failures, fmt.Sprintf("restore %s: %v", original, err))
		}
	}

	st.ShowItems(all, "")
	msg := fmt.Sprintf("%d results across %d accounts", len(all), len(names))
	if len(failures) > 0 {
		msg = fmt.Sprintf("%s (errors: %s)", msg, strings.Join(failures, ", "))
	}
	return msg, nil
}
