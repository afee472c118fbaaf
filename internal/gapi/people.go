package gapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

const peopleBase = "https://people.googleapis.com/v1"

const contactReadMask = "names,emailAddresses,phoneNumbers,organizations"

type People struct {
	c Doer
}

func NewPeople(c Doer) People { return People{c: c} }

func (p People) GetMe(ctx context.Context) (map[string]any, error) {
	return p.GetPerson(ctx, "people/me", contactReadMask)
}

func (p People) GetPerson(ctx context.Context, resourceName, personFields string) (map[string]any, error) {
	v := url.Values{"personFields": {personFields}}
	return p.c.Get(ctx, fmt.Sprintf("%s/%s%s", peopleBase, resourceName, query(v)))
}

func (p People) ListContacts(ctx context.Context, pageSize int, pageToken, sortOrder string) (map[string]any, error) {
	v := url.Values{
		"pageSize":     {strconv.Itoa(pageSize)},
		"personFields": {contactReadMask},
	}
	if pageToken != "" {
		v.Set("pageToken", pageToken)
	}
	if sortOrder != "" {
		v.Set("sortOrder", sortOrder)
	}
	return p.c.Get(ctx, peopleBase+"/people/me/connections"+query(v))
}

func (p People) SearchContacts(ctx context.Context, q string, pageSize int) (map[string]any, error) {
	v := url.Values{
		"query":    {q},
		"pageSize": {strconv.Itoa(pageSize)},
		"readMask": {contactReadMask},
	}
	return p.c.Get(ctx, peopleBase+"/people:searchContacts"+query(v))
}

func (p People) CreateContact(ctx context.Context, person map[string]any) (map[string]any, error) {
	return p.c.Post(ctx, peopleBase+"/people:createContact", person)
}

func (p People) UpdateContact(ctx context.Context, resourceName string, person map[string]any, updateFields string) (map[string]any, error) {
	v := url.Values{"updatePersonFields": {updateFields}}
	return p.c.Patch(ctx, fmt.Sprintf("%s/%s:updateContact%s", peopleBase, resourceName, query(v)), person)
}

func (p People) DeleteContact(ctx context.Context, resourceName string) (map[string]any, error) {
	return p.c.Delete(ctx, fmt.Sprintf("%s/%s:deleteContact", peopleBase, resourceName))
}

func (p People) ListContactGroups(ctx context.Context, pageSize int, pageToken string) (map[string]any, error) {
	v := url.Values{
		"pageSize":    {strconv.Itoa(pageSize)},
		"groupFields": {"name,memberCount"},
	}
	if pageToken != "" {
		v.Set("pageToken", pageToken)
	}
	return p.c.Get(ctx, peopleBase+"/contactGroups"+query(v))
}

func (p People) CreateContactGroup(ctx context.Context, name string) (map[string]any, error) {
	return p.c.Post(ctx, peopleBase+"/contactGroups", map[string]any{
		"contactGroup": map[string]any{"name": name},
	})
}

func (p People) DeleteContactGroup(ctx context.Context, resourceName string, deleteContacts bool) (map[string]any, error) {
	v := url.Values{"deleteContacts": {strconv.FormatBool(deleteContacts)}}
	return p.c.Delete(ctx, fmt.Sprintf("%s/%s%s", peopleBase, resourceName, query(v)))
}

func (p People) ModifyGroupMembers(ctx context.Context, resourceName string, add, remove []string) (map[string]any, error) {
	body := map[string]any{}
	if len(add) > 0 {
		body["resourceNamesToAdd"] = add
	}
	if len(remove) > 0 {
		body["resourceNamesToRemove"] = remove
	}
	return p.c.Post(ctx, fmt.Sprintf("%s/%s/members:modify", peopleBase, resourceName), body)
}

func (p People) ListOtherContacts(ctx context.Context, pageSize int, pageToken string) (map[string]any, error) {
	v := url.Values{
		"pageSize": {strconv.Itoa(pageSize)},
		"readMask": {"names,emailAddresses,phoneNumbers"},
	}
	if pageToken != "" {
		v.Set("pageToken", pageToken)
	}
	return p.c.Get(ctx, peopleBase+"/otherContacts"+query(v))
}

func (p People) CopyOtherContact(ctx context.Context, resourceName string) (map[string]any, error) {
	return p.c.Post(ctx, fmt.Sprintf("%s/%s:copyOtherContactToMyContactsGroup", peopleBase, resourceName), map[string]any{
		"copyMask": "names,emailAddresses,phoneNumbers",
	})
}

func (p People) SearchDirectory(ctx context.Context, q string, pageSize int, pageToken string) (map[string]any, error) {
	v := url.Values{
		"query":    {q},
		"pageSize": {strconv.Itoa(pageSize)},
		"readMask": {contactReadMask},
		"sources":  {"DIRECTORY_SOURCE_TYPE_DOMAIN_PROFILE"},
	}
	if pageToken != "" {
		v.Set("pageToken", pageToken)
	}
	return p.c.Get(ctx, peopleBase+"/people:searchDirectoryPeople"+query(v))
}
