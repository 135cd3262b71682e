package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Метрики планировщика академии
var (
	// Диалог
	TurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "academy_scheduler_turns_total",
			Help: "Обработанные сообщения диалога по результату",
		},
		[]string{"channel", "outcome"},
	)

	TurnDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "academy_scheduler_turn_duration_seconds",
			Help:    "Время обработки одного сообщения диалога",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"channel"},
	)

	ProposalsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "academy_scheduler_proposals_total",
			Help: "Сгенерированные предложения по статусу",
		},
		[]string{"status"},
	)

	SlotsAdjusted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "academy_scheduler_slots_adjusted_total",
			Help: "Слоты, сдвинутые из-за конфликта",
		},
	)

	SlotsConflicted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "academy_scheduler_slots_conflicted_total",
			Help: "Слоты с неразрешённым конфликтом",
		},
	)

	// Занятия
	LessonMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "academy_lesson_mutations_total",
			Help: "Изменения занятий по операции",
		},
		[]string{"operation"},
	)

	StoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "academy_store_errors_total",
			Help: "Ошибки хранилищ",
		},
		[]string{"store", "operation"},
	)

	ActiveDialogues = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "academy_active_dialogues",
			Help: "Диалоги в памяти процесса",
		},
	)

	// HTTP
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "academy_http_requests_total",
			Help: "HTTP запросы по маршруту и коду ответа",
		},
		[]string{"route", "status"},
	)
)
