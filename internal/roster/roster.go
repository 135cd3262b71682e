// Package roster хранит статические справочники академии: преподаватели, аудитории, курсы.
package roster

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Roster справочники только для чтения
type Roster struct {
	teachers []string
	rooms    []string
	courses  []string
}

// New создаёт справочник, копируя входные списки
func New(teachers, rooms, courses []string) *Roster {
	return &Roster{
		teachers: clean(teachers),
		rooms:    clean(rooms),
		courses:  clean(courses),
	}
}

// Default справочник по умолчанию (для разработки и CLI)
func Default() *Roster {
	return New(
		[]string{"Rossi Mario", "Bianchi Laura", "Verdi Giuseppe", "Esposito Chiara", "Romano Luca", "Colombo Sara"},
		[]string{"Studio A", "Studio B", "Sala Concerti", "Aula Pianoforte", "Aula Teoria"},
		[]string{"Chitarra", "Pianoforte", "Violino", "Canto", "Batteria", "Teoria Musicale", "Solfeggio"},
	)
}

// Load читает справочник из файла (yaml, json, toml) через viper.
// Пустой путь означает справочник по умолчанию.
func Load(path string) (*Roster, error) {
	if path == "" {
		return Default(), nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read roster %s: %w", path, err)
	}

	r := New(
		v.GetStringSlice("teachers"),
		v.GetStringSlice("rooms"),
		v.GetStringSlice("courses"),
	)
	if len(r.rooms) == 0 {
		return nil, fmt.Errorf("roster %s: no rooms defined", path)
	}

	return r, nil
}

func clean(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.Join(strings.Fields(s), " ")
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Teachers список преподавателей в формате "Фамилия Имя"
func (r *Roster) Teachers() []string {
	return append([]string(nil), r.teachers...)
}

// Rooms список аудиторий
func (r *Roster) Rooms() []string {
	return append([]string(nil), r.rooms...)
}

// Courses список курсов
func (r *Roster) Courses() []string {
	return append([]string(nil), r.courses...)
}

// HasRoom проверяет аудиторию без учёта регистра
func (r *Roster) HasRoom(room string) bool {
	_, ok := lookup(r.rooms, room)
	return ok
}

// RoomByName каноническое название аудитории
func (r *Roster) RoomByName(room string) (string, bool) {
	return lookup(r.rooms, room)
}

// CourseByName каноническое название курса
func (r *Roster) CourseByName(course string) (string, bool) {
	return lookup(r.courses, course)
}

func lookup(list []string, name string) (string, bool) {
	name = strings.TrimSpace(name)
	for _, item := range list {
		if strings.EqualFold(item, name) {
			return item, true
		}
	}
	return "", false
}
