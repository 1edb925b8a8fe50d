package search

import (
	"context"
	"strings"

	"booksearch/internal/books"
	"booksearch/internal/messages"
	"booksearch/internal/query"
)

// VolumeLister is the upstream the service reads from (books.Client).
type VolumeLister interface {
	Volumes(ctx context.Context, query string) (*books.VolumesResponse, error)
}

// Service runs the fetch and maps raw volumes to Results.
type Service struct {
	client  VolumeLister
	msgs    *messages.Printer
	aliases bool
}

// NewService builds a Service. With aliases set, field prefixes such as
// author: are rewritten before the request goes out.
func NewService(client VolumeLister, msgs *messages.Printer, aliases bool) *Service {
	return &Service{client: client, msgs: msgs, aliases: aliases}
}

// Prepare trims rawInput and rewrites field aliases when enabled. ok is false
// when nothing is left to send.
func (s *Service) Prepare(rawInput string) (string, bool) {
	return query.Prepare(rawInput, s.aliases)
}

// Search issues one upstream request for a prepared query and maps every
// item, in order.
func (s *Service) Search(ctx context.Context, q string) ([]Result, error) {
	resp, err := s.client.Volumes(ctx, q)
	if err != nil {
		return nil, err
	}

	res := make([]Result, 0, len(resp.Items))
	for _, it := range resp.Items {
		res = append(res, s.toResult(it.VolumeInfo))
	}
	return res, nil
}

func (s *Service) toResult(info books.VolumeInfo) Result {
	title, ok := info.TitleText()
	if !ok {
		title = s.msgs.Get(messages.UnknownTitle)
	}

	// A missing or null authors key gets the placeholder; an empty list is
	// shown as it is.
	var authors []string
	authorLine := s.msgs.Get(messages.UnknownAuthor)
	if info.Authors != nil {
		authors = append([]string{}, info.Authors...)
		authorLine = strings.Join(authors, ", ")
	}

	thumb, _ := info.ThumbnailURL()

	return Result{
		Title:      title,
		Authors:    authors,
		AuthorLine: authorLine,
		Thumbnail:  thumb,
	}
}
