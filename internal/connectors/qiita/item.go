package qiita

import (
	"time"

	"github.com/speaktech/transqiita/internal/core/domain"
)

// item is the Qiita v2 item resource.
type item struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Tags      []itemTag `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	URL       string    `json:"url"`
	Private   bool      `json:"private"`
	User      struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"user"`
}

type itemTag struct {
	Name     string   `json:"name"`
	Versions []string `json:"versions"`
}

// itemRequest is the POST/PATCH body. Gist and Tweet are only sent on create.
type itemRequest struct {
	Body         string    `json:"body"`
	Coediting    bool      `json:"coediting"`
	Gist         *bool     `json:"gist,omitempty"`
	GroupURLName *string   `json:"group_url_name"`
	Private      bool      `json:"private"`
	Tags         []itemTag `json:"tags"`
	Title        string    `json:"title"`
	Tweet        *bool     `json:"tweet,omitempty"`
}

func (it item) article() domain.Article {
	a := domain.Article{
		ID:        it.ID,
		Title:     it.Title,
		Body:      it.Body,
		Tags:      make([]domain.Tag, len(it.Tags)),
		CreatedAt: it.CreatedAt,
		UpdatedAt: it.UpdatedAt,
		URL:       it.URL,
		Private:   it.Private,
		OwnerID:   it.User.ID,
		OwnerName: it.User.Name,
	}
	for i, t := range it.Tags {
		a.Tags[i] = domain.Tag{Name: t.Name, Versions: t.Versions}
	}
	return a
}

func newItemRequest(d domain.Draft) itemRequest {
	tags := make([]itemTag, len(d.Tags))
	for i, t := range d.Tags {
		versions := t.Versions
		if versions == nil {
			versions = []string{}
		}
		tags[i] = itemTag{Name: t.Name, Versions: versions}
	}
	return itemRequest{
		Body:    d.Body,
		Private: d.Private,
		Tags:    tags,
		Title:   d.Title,
	}
}
