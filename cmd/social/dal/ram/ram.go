// Package ram is the in-memory engine behind the social storage port.
// It backs the test suites and local runs; semantics are identical to the
// mysql engine, including error values and result ordering.
package ram

import (
	"context"
	"sort"
	"sync"
	"time"

	"cliptube/cmd/social/dal"
	"cliptube/pkg/errno"
	"cliptube/pkg/pagination"
	"cliptube/pkg/utils"
)

type requestKey struct {
	from string
	to   string
}

type pairKey struct {
	userA string
	userB string
}

func orderedPairKey(email1, email2 string) pairKey {
	if email1 > email2 {
		return pairKey{userA: email2, userB: email1}
	}
	return pairKey{userA: email1, userB: email2}
}

type messageRow struct {
	id       int64
	from     string
	to       string
	content  string
	creation time.Time
}

type FriendDB struct {
	mu       sync.RWMutex
	requests map[requestKey]time.Time
	friends  map[pairKey]struct{}
	messages []messageRow
}

func New() *FriendDB {
	return &FriendDB{
		requests: make(map[requestKey]time.Time),
		friends:  make(map[pairKey]struct{}),
	}
}

func (f *FriendDB) CreateFriendRequest(_ context.Context, fromEmail, toEmail string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.friends[orderedPairKey(fromEmail, toEmail)]; ok {
		return errno.AlreadyFriendsErr
	}
	key := requestKey{from: fromEmail, to: toEmail}
	if _, ok := f.requests[key]; !ok {
		f.requests[key] = time.Now()
	}
	return nil
}

func (f *FriendDB) AcceptFriendRequest(_ context.Context, fromEmail, toEmail string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := requestKey{from: fromEmail, to: toEmail}
	if _, ok := f.requests[key]; !ok {
		return errno.FriendRequestNotFoundErr
	}
	delete(f.requests, key)
	f.friends[orderedPairKey(fromEmail, toEmail)] = struct{}{}
	return nil
}

func (f *FriendDB) RejectFriendRequest(_ context.Context, fromEmail, toEmail string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := requestKey{from: fromEmail, to: toEmail}
	if _, ok := f.requests[key]; !ok {
		return errno.FriendRequestNotFoundErr
	}
	delete(f.requests, key)
	return nil
}

func (f *FriendDB) GetFriendRequests(_ context.Context, userEmail string) ([]string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	type pending struct {
		from     string
		creation time.Time
	}
	var rows []pending
	for key, creation := range f.requests {
		if key.to == userEmail {
			rows = append(rows, pending{from: key.from, creation: creation})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].creation.Equal(rows[j].creation) {
			return rows[i].creation.After(rows[j].creation)
		}
		return rows[i].from < rows[j].from
	})
	senders := make([]string, 0, len(rows))
	for _, row := range rows {
		senders = append(senders, row.from)
	}
	return senders, nil
}

func (f *FriendDB) GetFriends(_ context.Context, userEmail string) ([]string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	friends := make([]string, 0)
	for pair := range f.friends {
		switch userEmail {
		case pair.userA:
			friends = append(friends, pair.userB)
		case pair.userB:
			friends = append(friends, pair.userA)
		}
	}
	sort.Strings(friends)
	return friends, nil
}

func (f *FriendDB) AreFriends(_ context.Context, email1, email2 string) (bool, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.friends[orderedPairKey(email1, email2)]
	return ok, nil
}

func (f *FriendDB) ExistsFriendRequest(_ context.Context, fromEmail, toEmail string) (bool, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.requests[requestKey{from: fromEmail, to: toEmail}]
	return ok, nil
}

func (f *FriendDB) SendMessage(_ context.Context, fromEmail, toEmail, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.friends[orderedPairKey(fromEmail, toEmail)]; !ok {
		return errno.NotFriendsErr
	}
	f.messages = append(f.messages, messageRow{
		id:       utils.GenerateMessageID(),
		from:     fromEmail,
		to:       toEmail,
		content:  content,
		creation: time.Now(),
	})
	return nil
}

func (f *FriendDB) GetConversation(_ context.Context, email1, email2 string, page, perPage int64) ([]dal.Message, int64, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var rows []messageRow
	for _, row := range f.messages {
		if (row.from == email1 && row.to == email2) || (row.from == email2 && row.to == email1) {
			rows = append(rows, row)
		}
	}
	sortNewestFirst(rows)

	total := int64(len(rows))
	totalPages := pagination.PageCount(total, perPage)
	if err := pagination.ValidateConversation(page, perPage, total); err != nil {
		return nil, 0, err
	}

	offset, limit := pagination.Window(page, perPage)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	messages := make([]dal.Message, 0, end-offset)
	for _, row := range rows[offset:end] {
		messages = append(messages, toMessage(row))
	}
	return messages, totalPages, nil
}

func (f *FriendDB) GetConversations(_ context.Context, userEmail string) ([]dal.Conversation, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var rows []messageRow
	for _, row := range f.messages {
		if row.from == userEmail || row.to == userEmail {
			rows = append(rows, row)
		}
	}
	sortNewestFirst(rows)

	seen := make(map[string]bool)
	conversations := make([]dal.Conversation, 0)
	for _, row := range rows {
		peer := row.from
		if peer == userEmail {
			peer = row.to
		}
		if seen[peer] {
			continue
		}
		seen[peer] = true
		conversations = append(conversations, dal.Conversation{
			PeerEmail:   peer,
			LastMessage: toMessage(row),
		})
	}
	return conversations, nil
}

func (f *FriendDB) Close() error { return nil }

func toMessage(row messageRow) dal.Message {
	return dal.Message{
		FromEmail:    row.from,
		ToEmail:      row.to,
		Content:      row.content,
		CreationTime: row.creation,
	}
}

func sortNewestFirst(rows []messageRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].creation.Equal(rows[j].creation) {
			return rows[i].creation.After(rows[j].creation)
		}
		return rows[i].id > rows[j].id
	})
}
