package session

import (
	"fmt"
	"strings"

	"github.com/SierraSoftworks/connor"
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/fulldump/peopledb/store"
	"github.com/fulldump/peopledb/utils"
)

// Find prints the records matching query. A query starting with '{' is a
// JSON filter over the fields id, name and status, anything else is an
// exact name.
func (s *Session) Find(query string) ([]int, error) {
	var ids []int
	var err error

	if strings.HasPrefix(strings.TrimSpace(query), "{") {
		ids, err = s.filter(query)
	} else {
		ids = s.db.Store.FindByName(query)
	}
	if err != nil {
		s.db.Store.Fail(store.InvalidInput, "Invalid query.", err)
		s.warn("find", err)
		s.Printf("%s\n", s.db.Store.ErrMessage())
		return nil, err
	}
	s.db.Store.Succeed()

	if len(ids) == 0 {
		s.Printf("No matches found.\n")
		return ids, nil
	}

	width := s.Width()
	s.PrintHeader(width)
	for _, id := range ids {
		s.PrintOne(id, width)
	}
	return ids, nil
}

func (s *Session) filter(query string) ([]int, error) {
	filter := map[string]interface{}{}
	err := json.Unmarshal([]byte(query), &filter, jsontext.AllowInvalidUTF8(true))
	if err != nil {
		return nil, fmt.Errorf("decode filter: %w", err)
	}

	ids := []int{}
	rows := s.db.Store.Scan().NonEmpty()
	for rows.Next() {
		r := rows.Read()

		rowData := map[string]interface{}{}
		err := utils.Remarshal(r, &rowData)
		if err != nil {
			return nil, err
		}

		match, err := connor.Match(filter, rowData)
		if err != nil {
			return nil, fmt.Errorf("match: %w", err)
		}
		if match {
			ids = append(ids, r.ID)
		}
	}
	return ids, nil
}
