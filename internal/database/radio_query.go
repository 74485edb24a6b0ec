package database

import (
	"gorm.io/gorm"

	"github.com/evidentia/opshub/internal/model"
)

type RadioQuery struct {
	Query[model.RadioLog]
	id     uint
	sender string
	voice  *bool
}

func NewRadioQuery(db *gorm.DB) *RadioQuery {
	return &RadioQuery{
		Query: Query[model.RadioLog]{
			db:     db,
			limit:  100,
			offset: 0,
			order:  "created_at DESC",
		},
	}
}

func (q *RadioQuery) Order(s string) *RadioQuery {
	q.order = s
	return q
}

func (q *RadioQuery) Limit(n int) *RadioQuery {
	q.limit = n
	return q
}

func (q *RadioQuery) Offset(n int) *RadioQuery {
	q.offset = n
	return q
}

func (q *RadioQuery) Id(id uint) *RadioQuery {
	q.id = id
	return q
}

func (q *RadioQuery) Sender(sender string) *RadioQuery {
	q.sender = sender
	return q
}

func (q *RadioQuery) Voice(b bool) *RadioQuery {
	q.voice = &b
	return q
}

func (q *RadioQuery) where() *gorm.DB {
	tx := q.db

	if q.id != 0 {
		tx = tx.Where("id = ?", q.id)
	}

	if q.sender != "" {
		tx = tx.Where("sender = ?", q.sender)
	}

	if q.voice != nil {
		tx = tx.Where("is_voice = ?", *q.voice)
	}

	return tx
}

func (q *RadioQuery) Get() []*model.RadioLog {
	return q.get(q.where().Model(&model.RadioLog{}))
}

func (q *RadioQuery) One() *model.RadioLog {
	return q.one(q.where().Model(&model.RadioLog{}))
}

func (q *RadioQuery) Count() int64 {
	return q.count(q.where().Model(&model.RadioLog{}))
}
