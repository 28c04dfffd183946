package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		usersRegisteredTotal,
		premiumChangesTotal,
		referralsTotal,
		quizAttemptsTotal,
		quizScoreRatio,
	)
}

var (
	usersRegisteredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "users_registered_total",
			Help: "Total number of new learners registered.",
		},
	)

	premiumChangesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "premium_changes_total",
			Help: "Premium grants and revocations.",
		},
		[]string{"action"}, // 'activated', 'revoked'
	)

	referralsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "referrals_total",
			Help: "Referral redemptions by outcome.",
		},
		[]string{"result"}, // 'recorded', 'unknown_code', 'unknown_user', 'self', 'already_referred'
	)

	quizAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiz_attempts_total",
			Help: "Completed quiz attempts by quiz category.",
		},
		[]string{"category"},
	)

	quizScoreRatio = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "quiz_score_ratio",
			Help:    "Share of correct answers per completed attempt.",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		},
	)
)

func IncUsersRegistered() {
	usersRegisteredTotal.Inc()
}

func IncPremiumChange(action string) {
	premiumChangesTotal.WithLabelValues(norm(action)).Inc()
}

func IncReferral(result string) {
	referralsTotal.WithLabelValues(norm(result)).Inc()
}

func ObserveQuizAttempt(category string, score, total int) {
	quizAttemptsTotal.WithLabelValues(norm(category)).Inc()
	if total > 0 {
		quizScoreRatio.Observe(float64(score) / float64(total))
	}
}
