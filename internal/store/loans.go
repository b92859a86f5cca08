package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"sort"

	"github.com/dgraph-io/badger/v4"

	"github.com/shelfmarkapp/shelfmark-server/internal/domain"
)

// Loan keys are scoped per user: "loan:<userID>:<bookID>". A book id can
// therefore appear at most once in a user's ledger, enforced by the key
// itself.
const loanPrefix = "loan:"

// loanKey builds the ledger key for a user's loan of a book.
func loanKey(userID, bookID string) []byte {
	return []byte(loanPrefix + userID + ":" + bookID)
}

// userLoanPrefix builds the ledger key prefix covering all of a user's loans.
func userLoanPrefix(userID string) []byte {
	return []byte(loanPrefix + userID + ":")
}

// CreateLoan inserts a loan record. Returns ErrLoanExists when the user
// already has an active loan for the book.
func (s *Store) CreateLoan(ctx context.Context, loan *domain.LoanRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := loanKey(loan.UserID, loan.BookID)

	return s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err == nil {
			return ErrLoanExists
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("check loan exists: %w", err)
		}

		data, err := json.Marshal(loan)
		if err != nil {
			return fmt.Errorf("marshal loan: %w", err)
		}

		if err := txn.Set(key, data); err != nil {
			return fmt.Errorf("save loan: %w", err)
		}
		return nil
	})
}

// GetLoan retrieves a user's loan of a book.
func (s *Store) GetLoan(ctx context.Context, userID, bookID string) (*domain.LoanRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var loan domain.LoanRecord
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(loanKey(userID, bookID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrLoanNotFound
		}
		if err != nil {
			return fmt.Errorf("get loan: %w", err)
		}

		return item.Value(func(val []byte) error {
			if err := json.Unmarshal(val, &loan); err != nil {
				return fmt.Errorf("unmarshal loan: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return &loan, nil
}

// HasLoan reports whether the user has an active loan for the book.
func (s *Store) HasLoan(ctx context.Context, userID, bookID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return s.exists(loanKey(userID, bookID))
}

// DeleteLoan removes a user's loan of a book.
// Returns ErrLoanNotFound when no such loan exists.
func (s *Store) DeleteLoan(ctx context.Context, userID, bookID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := loanKey(userID, bookID)

	return s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrLoanNotFound
		}
		if err != nil {
			return fmt.Errorf("check loan exists: %w", err)
		}

		if err := txn.Delete(key); err != nil {
			return fmt.Errorf("delete loan: %w", err)
		}
		return nil
	})
}

// ListLoans returns all of a user's loans in the order they were created.
// Badger iterates keys lexicographically by book id, so the records are
// re-sorted by creation time to preserve insertion order for the UI.
func (s *Store) ListLoans(ctx context.Context, userID string) ([]*domain.LoanRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var loans []*domain.LoanRecord
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		prefix := userLoanPrefix(userID)
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var loan domain.LoanRecord
				if err := json.Unmarshal(val, &loan); err != nil {
					return fmt.Errorf("unmarshal loan: %w", err)
				}
				loans = append(loans, &loan)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(loans, func(i, j int) bool {
		return loans[i].CreatedAt.Before(loans[j].CreatedAt)
	})

	return loans, nil
}

// DeleteUserLoans removes every loan in a user's ledger and returns how many
// were removed. Used when a session ends and its loans are discarded.
func (s *Store) DeleteUserLoans(ctx context.Context, userID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	// Collect keys under a read iterator first; deleting while iterating
	// inside the same transaction invalidates the iterator.
	var keys [][]byte
	prefix := userLoanPrefix(userID)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if len(keys) == 0 {
		return 0, nil
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		for _, key := range keys {
			if err := txn.Delete(key); err != nil {
				return fmt.Errorf("delete loan: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return len(keys), nil
}
