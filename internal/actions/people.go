package actions

import (
	"context"
	"fmt"
	"strings"

	"github.com/gwork/gwork-cli/internal/apierr"
	"github.com/gwork/gwork-cli/internal/nav"
)

var peopleService = service{
	name: "Contacts",
	actions: []Action{
		{Name: "Contacts", Run: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
			val, err := d.people.ListContacts(ctx, 20, "", "LAST_NAME_ASCENDING")
			if err != nil {
				return "", err
			}
			var items []nav.Item
			for _, c := range arr(val, "connections") {
				items = append(items, personItem(c, firstValue(c, "emailAddresses", "value")))
			}
			st.ShowItems(items, str(val, "nextPageToken"))
			d.more = func(ctx context.Context, st *nav.State) (string, error) {
				val, err := d.people.ListContacts(ctx, 20, st.NextPageToken, "LAST_NAME_ASCENDING")
				if err != nil {
					return "", err
				}
				var items []nav.Item
				for _, c := range arr(val, "connections") {
					items = append(items, personItem(c, firstValue(c, "emailAddresses", "value")))
				}
				st.AppendItems(items, str(val, "nextPageToken"))
				return fmt.Sprintf("%d contacts loaded", len(st.Items)), nil
			}
			return fmt.Sprintf("%d contacts loaded", len(items)), nil
		}},
		{
			Name:   "Search",
			Fields: []nav.Field{field("Search Query", "John", true)},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				val, err := d.people.SearchContacts(ctx, fieldVal(st, 0), 20)
				if err != nil {
					return "", err
				}
				var items []nav.Item
				for _, r := range arr(val, "results") {
					person, _ := r["person"].(map[string]any)
					if person == nil {
						continue
					}
					items = append(items, personItem(person, "search result"))
				}
				st.ShowItems(items, "")
				return fmt.Sprintf("%d contacts found", len(items)), nil
			},
		},
		{
			Name: "Create Contact",
			Fields: []nav.Field{
				field("First Name", "John", true),
				field("Last Name", "Doe", true),
				field("Email", "john@example.com", false),
				field("Phone", "+1-555-0100", false),
				field("Organization", "Acme Corp", false),
			},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				person := map[string]any{
					"names": []map[string]any{{"givenName": fieldVal(st, 0), "familyName": fieldVal(st, 1)}},
				}
				if v := fieldVal(st, 2); v != "" {
					person["emailAddresses"] = []map[string]any{{"value": v}}
				}
				if v := fieldVal(st, 3); v != "" {
					person["phoneNumbers"] = []map[string]any{{"value": v}}
				}
				if v := fieldVal(st, 4); v != "" {
					person["organizations"] = []map[string]any{{"name": v}}
				}
				if _, err := d.people.CreateContact(ctx, person); err != nil {
					return "", err
				}
				st.ReturnToActions()
				return "contact created", nil
			},
		},
		{Name: "Groups", Run: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
			val, err := d.people.ListContactGroups(ctx, 20, "")
			if err != nil {
				return "", err
			}
			var items []nav.Item
			for _, g := range arr(val, "contactGroups") {
				count, _ := g["memberCount"].(float64)
				items = append(items, nav.Item{
					ID:       str(g, "resourceName"),
					Title:    str(g, "name"),
					Subtitle: fmt.Sprintf("%d members", int(count)),
				})
			}
			st.ShowItems(items, str(val, "nextPageToken"))
			return fmt.Sprintf("%d groups", len(items)), nil
		}},
		{Name: "Other Contacts", Run: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
			val, err := d.people.ListOtherContacts(ctx, 20, "")
			if err != nil {
				return "", err
			}
			var items []nav.Item
			for _, c := range arr(val, "otherContacts") {
				items = append(items, personItem(c, "other contact"))
			}
			st.ShowItems(items, str(val, "nextPageToken"))
			return fmt.Sprintf("%d other contacts", len(items)), nil
		}},
		{
			Name:   "Directory",
			Fields: []nav.Field{field("Search Query", "Jane", true)},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				val, err := d.people.SearchDirectory(ctx, fieldVal(st, 0), 20, "")
				if err != nil {
					return "", err
				}
				st.ShowItems(nil, "")
				st.ShowDetail(detailJSON(val))
				return "directory search results loaded", nil
			},
		},
		{Name: "My Profile", Run: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
			val, err := d.people.GetMe(ctx)
			if err != nil {
				return "", err
			}
			st.ShowItems(nil, "")
			st.ShowDetail(detailJSON(val))
			return "profile loaded", nil
		}},
		{
			Name: "Edit Contact",
			Fields: []nav.Field{
				field("Resource Name", "people/c123", true),
				field("Etag", "paste contact etag", true),
				field("First Name", "", false),
				field("Last Name", "", false),
				field("Email", "", false),
				field("Phone", "", false),
			},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				person := map[string]any{"etag": fieldVal(st, 1)}
				var mask []string
				if first, last := fieldVal(st, 2), fieldVal(st, 3); first != "" || last != "" {
					person["names"] = []map[string]any{{"givenName": first, "familyName": last}}
					mask = append(mask, "names")
				}
				if v := fieldVal(st, 4); v != "" {
					person["emailAddresses"] = []map[string]any{{"value": v}}
					mask = append(mask, "emailAddresses")
				}
				if v := fieldVal(st, 5); v != "" {
					person["phoneNumbers"] = []map[string]any{{"value": v}}
					mask = append(mask, "phoneNumbers")
				}
				if len(mask) == 0 {
					return "", apierr.Otherf("nothing to update")
				}
				if _, err := d.people.UpdateContact(ctx, fieldVal(st, 0), person, strings.Join(mask, ",")); err != nil {
					return "", err
				}
				st.ReturnToActions()
				return "contact updated", nil
			},
		},
		{
			Name:   "New Group",
			Fields: []nav.Field{field("Group Name", "Book Club", true)},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				val, err := d.people.CreateContactGroup(ctx, fieldVal(st, 0))
				if err != nil {
					return "", err
				}
				st.ReturnToActions()
				return "group created: " + str(val, "resourceName"), nil
			},
		},
		{
			Name: "Delete Group",
			Fields: []nav.Field{
				field("Group Resource Name", "contactGroups/abc", true),
				field("Delete Contacts Too (true/false)", "false", false),
			},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				if _, err := d.people.DeleteContactGroup(ctx, fieldVal(st, 0), boolVal(st, 1, false)); err != nil {
					return "", err
				}
				st.ReturnToActions()
				return "group deleted", nil
			},
		},
		{
			Name: "Group Members",
			Fields: []nav.Field{
				field("Group Resource Name", "contactGroups/abc", true),
				field("Add (comma-sep resource names)", "people/c1,people/c2", false),
				field("Remove (comma-sep resource names)", "", false),
			},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				add, remove := splitComma(fieldVal(st, 1)), splitComma(fieldVal(st, 2))
				if len(add) == 0 && len(remove) == 0 {
					return "", apierr.Otherf("nothing to change")
				}
				if _, err := d.people.ModifyGroupMembers(ctx, fieldVal(st, 0), add, remove); err != nil {
					return "", err
				}
				st.ReturnToActions()
				return fmt.Sprintf("group updated: +%d -%d", len(add), len(remove)), nil
			},
		},
		{
			Name:   "Save Other Contact",
			Fields: []nav.Field{field("Resource Name", "otherContacts/c123", true)},
			Submit: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
				if _, err := d.people.CopyOtherContact(ctx, fieldVal(st, 0)); err != nil {
					return "", err
				}
				st.ReturnToActions()
				return "saved to contacts", nil
			},
		},
	},
	detail: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
		it := st.SelectedItem()
		val, err := d.people.GetPerson(ctx, it.ID, "names,emailAddresses,phoneNumbers,organizations,addresses,biographies")
		if err != nil {
			return "", err
		}
		st.ShowDetail(detailJSON(val))
		return "contact loaded", nil
	},
	remove: func(ctx context.Context, d *Dispatcher, st *nav.State) (string, error) {
		it := st.SelectedItem()
		if _, err := d.people.DeleteContact(ctx, it.ID); err != nil {
			return "", err
		}
		st.RemoveSelectedItem()
		return "contact deleted", nil
	},
}

// personItem projects a People API person into a row: display name as the
// title, the given subtitle as context.
func personItem(person map[string]any, subtitle string) nav.Item {
	name := firstValue(person, "names", "displayName")
	if name == "" {
		name = "Unnamed"
	}
	return nav.Item{ID: str(person, "resourceName"), Title: name, Subtitle: subtitle}
}

// firstValue reads field key from the first element of a person's list
// attribute (names, emailAddresses, ...).
func firstValue(person map[string]any, attr, key string) string {
	list := arr(person, attr)
	if len(list) == 0 {
		return ""
	}
	return str(list[0], key)
}
