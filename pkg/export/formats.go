package export

import (
	"sort"
	"strings"
	"time"

	"nippo/entities"
)

const SummarySheet = "サマリー"

var (
	reportColumns = []Column{
		{"実施日", 12}, {"投稿日時", 18}, {"氏名", 14}, {"区分", 12}, {"場所", 18},
		{"内容", 60}, {"所感", 40}, {"訪問店舗", 40}, {"いいね", 8}, {"ナイスファイト", 12}, {"コメント", 10},
	}
	planColumns = []Column{
		{"氏名", 14}, {"開始日", 12}, {"終了日", 12},
		{"月", 30}, {"火", 30}, {"水", 30}, {"木", 30}, {"金", 30}, {"土", 30}, {"日", 30},
		{"いいね", 8}, {"ナイスファイト", 12}, {"コメント", 10},
	}
	visitSummaryColumns = []Column{
		{"氏名", 14}, {"得意先c", 12}, {"得意先名", 30}, {"訪問回数", 10}, {"訪問日", 40},
	}
	visitUserColumns = []Column{
		{"得意先c", 12}, {"得意先名", 30}, {"訪問回数", 10}, {"訪問日", 40}, {"内容", 60}, {"次回アクション", 40},
	}
	monthlyColumns = []Column{
		{"年月", 10}, {"氏名", 14}, {"日報数", 10}, {"訪問数", 10}, {"いいね", 8}, {"ナイスファイト", 12}, {"コメント", 10},
	}
)

// cell flattens editor markup; absent values stay empty cells.
func cell(s string) any {
	return PlainText(s)
}

func stamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}

func authorName(u *entities.User) string {
	if n := u.Name(); n != "" {
		return n
	}
	return "(不明)"
}

func DailyReports(posts []entities.Post) Book {
	rows := make([][]any, 0, len(posts))
	for _, p := range posts {
		rows = append(rows, []any{
			p.ExecutionDate,
			stamp(p.PostDate),
			authorName(p.Author),
			cell(p.Category),
			cell(p.Location),
			cell(p.Content),
			cell(p.Remarks),
			visitedStoresText(p.VisitedStores),
			p.Likes,
			p.NiceFights,
			p.CommentCount,
		})
	}
	return Book{
		FileName: "daily_reports",
		Sheets:   []Sheet{{Name: "日報", Columns: reportColumns, Rows: rows}},
	}
}

func visitedStoresText(visits []entities.VisitedStore) string {
	lines := make([]string, 0, len(visits))
	for _, v := range visits {
		if v.Code() == "" && v.Name() == "" {
			continue
		}
		line := strings.TrimSpace(v.Code() + " " + v.Name())
		if c := PlainText(Resolve(v, FieldContent)); c != "" {
			line += ": " + c
		}
		if a := PlainText(Resolve(v, FieldNextAction)); a != "" {
			line += " / " + a
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func WeeklyPlans(plans []entities.WeeklyPlan) Book {
	rows := make([][]any, 0, len(plans))
	for i := range plans {
		p := &plans[i]
		row := []any{authorName(p.Author), p.StartDate, p.EndDate}
		for _, d := range p.Days() {
			row = append(row, cell(d))
		}
		rows = append(rows, append(row, p.Likes, p.NiceFights, p.CommentCount))
	}
	return Book{
		FileName: "weekly_plans",
		Sheets:   []Sheet{{Name: "週間予定", Columns: planColumns, Rows: rows}},
	}
}

// StoreVisit is one user's visits to one store, aggregated over the given posts.
type StoreVisit struct {
	UserID      uint
	User        string
	Code        string
	Name        string
	Count       int
	Dates       []string
	Contents    []string
	NextActions []string
}

// AggregateVisits groups visited stores by user id and store code. Visits
// without both a code and a name are ignored.
func AggregateVisits(posts []entities.Post) map[uint][]StoreVisit {
	type key struct {
		uid  uint
		code string
	}
	idx := map[key]*StoreVisit{}
	var order []key
	for _, p := range posts {
		for _, v := range p.VisitedStores {
			if v.Code() == "" || v.Name() == "" {
				continue
			}
			k := key{p.UserID, v.Code()}
			sv, ok := idx[k]
			if !ok {
				sv = &StoreVisit{UserID: p.UserID, User: authorName(p.Author), Code: v.Code(), Name: v.Name()}
				idx[k] = sv
				order = append(order, k)
			}
			sv.Count++
			sv.Dates = append(sv.Dates, p.ExecutionDate)
			if c := PlainText(Resolve(v, FieldContent)); c != "" {
				sv.Contents = append(sv.Contents, p.ExecutionDate+" "+c)
			}
			if a := PlainText(Resolve(v, FieldNextAction)); a != "" {
				sv.NextActions = append(sv.NextActions, p.ExecutionDate+" "+a)
			}
		}
	}
	out := map[uint][]StoreVisit{}
	for _, k := range order {
		sv := idx[k]
		sort.Strings(sv.Dates)
		out[k.uid] = append(out[k.uid], *sv)
	}
	return out
}

func byCountDesc(v []StoreVisit) {
	sort.SliceStable(v, func(i, j int) bool {
		if v[i].Count != v[j].Count {
			return v[i].Count > v[j].Count
		}
		return v[i].Code < v[j].Code
	})
}

// StoreVisits lays out a summary sheet over all users (user ascending, visit
// count descending) followed by one sheet per user (visit count descending).
// Users sharing a display name get separate sheets.
func StoreVisits(posts []entities.Post) Book {
	byUser := AggregateVisits(posts)
	uids := make([]uint, 0, len(byUser))
	for uid := range byUser {
		uids = append(uids, uid)
	}
	sort.Slice(uids, func(i, j int) bool {
		a, b := byUser[uids[i]][0].User, byUser[uids[j]][0].User
		if a != b {
			return a < b
		}
		return uids[i] < uids[j]
	})

	names := sheetNames{}
	summary := Sheet{Name: names.take(SummarySheet), Columns: visitSummaryColumns}
	var perUser []Sheet
	for _, uid := range uids {
		visits := byUser[uid]
		byCountDesc(visits)
		user := visits[0].User

		s := Sheet{Name: names.take(user), Columns: visitUserColumns}
		for _, v := range visits {
			dates := strings.Join(v.Dates, ", ")
			summary.Rows = append(summary.Rows, []any{user, v.Code, v.Name, v.Count, dates})
			s.Rows = append(s.Rows, []any{
				v.Code, v.Name, v.Count, dates,
				strings.Join(v.Contents, "\n"), strings.Join(v.NextActions, "\n"),
			})
		}
		perUser = append(perUser, s)
	}
	return Book{FileName: "store_visits", Sheets: append([]Sheet{summary}, perUser...)}
}

// MonthlyStats counts reports, store visits and feedback per month and user.
// The month is taken from the execution date.
func MonthlyStats(posts []entities.Post) Book {
	type key struct {
		month string
		uid   uint
	}
	type tally struct {
		user                                   string
		reports, visits, likes, nice, comments int64
	}
	stats := map[key]*tally{}
	for _, p := range posts {
		month := p.ExecutionDate
		if len(month) >= 7 {
			month = month[:7]
		}
		k := key{month, p.UserID}
		t, ok := stats[k]
		if !ok {
			t = &tally{user: authorName(p.Author)}
			stats[k] = t
		}
		t.reports++
		for _, v := range p.VisitedStores {
			if v.Code() != "" && v.Name() != "" {
				t.visits++
			}
		}
		t.likes += p.Likes
		t.nice += p.NiceFights
		t.comments += p.CommentCount
	}

	keys := make([]key, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].month != keys[j].month {
			return keys[i].month < keys[j].month
		}
		if a, b := stats[keys[i]].user, stats[keys[j]].user; a != b {
			return a < b
		}
		return keys[i].uid < keys[j].uid
	})

	rows := make([][]any, 0, len(keys))
	for _, k := range keys {
		t := stats[k]
		rows = append(rows, []any{k.month, t.user, t.reports, t.visits, t.likes, t.nice, t.comments})
	}
	return Book{
		FileName: "monthly_stats",
		Sheets:   []Sheet{{Name: "月次集計", Columns: monthlyColumns, Rows: rows}},
	}
}
