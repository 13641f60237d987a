package mock

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var once sync.Once
var db *Db

type Db struct {
	DbConn *gorm.DB
	models map[string]any
	order  []any
}

// NewDb opens the shared in-memory database and migrates models. Tables are
// keyed by their gorm table name so steps can address them by name.
func NewDb(models ...any) *Db {
	if db == nil {
		once.Do(
			func() {
				db = open(models)
			},
		)
	}

	return db
}

func open(models []any) *Db {
	dbSQL, err := sql.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		panic(err)
	}

	dbSQL.SetMaxOpenConns(1)

	dbConn, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	newDbMock := &Db{
		DbConn: dbConn,
		models: make(map[string]any, len(models)),
		order:  models,
	}

	for _, model := range models {
		table, err := newDbMock.tableName(model)
		if err != nil {
			panic(fmt.Sprintf("failed to parse model %T. err: %s", model, err.Error()))
		}
		newDbMock.models[table] = model
	}

	if err := newDbMock.init(); err != nil {
		panic(fmt.Sprintf("failed to migrate database. err: %s", err.Error()))
	}

	return newDbMock
}

// ClearDB empties every table, keeping the schema.
func (d *Db) ClearDB() error {
	for _, model := range d.order {
		err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(model).Error
		if err != nil {
			return err
		}
	}

	err := d.DbConn.Exec("DELETE FROM sqlite_sequence").Error
	if err != nil && !strings.Contains(err.Error(), "no such table: sqlite_sequence") {
		return err
	}
	return nil
}

func (d *Db) init() error {
	for _, model := range d.order {
		table, err := d.tableName(model)
		if err != nil {
			return err
		}
		if err := d.DbConn.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", table)).Error; err != nil {
			return err
		}
	}

	if err := d.DbConn.AutoMigrate(d.order...); err != nil {
		return err
	}

	for _, model := range d.order {
		if !d.DbConn.Migrator().HasTable(model) {
			return fmt.Errorf("table for model %T was not created", model)
		}
	}

	return nil
}

func (d *Db) tableName(model any) (string, error) {
	stmt := &gorm.Statement{DB: d.DbConn}
	if err := stmt.Parse(model); err != nil {
		return "", err
	}
	return stmt.Schema.Table, nil
}

func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.models[table]
	return model, ok
}
