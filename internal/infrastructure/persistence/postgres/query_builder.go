package postgres

import (
	"strconv"
	"strings"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// bookColumns 查询和RETURNING统一使用的列
const bookColumns = "id, title, author, publication_year, isbn, created_at, updated_at"

// query 动态SQL构建器
// 占位符编号始终由已绑定参数的个数推导,条件增减不会导致$n错位
type query struct {
	sb   strings.Builder
	args []any
}

func newQuery(base string) *query {
	q := &query{}
	q.sb.WriteString(base)
	return q
}

// bind 追加一个参数并返回它的占位符
func (q *query) bind(v any) string {
	q.args = append(q.args, v)
	return "$" + strconv.Itoa(len(q.args))
}

func (q *query) write(parts ...string) *query {
	for _, p := range parts {
		q.sb.WriteString(p)
	}
	return q
}

func (q *query) String() string {
	return q.sb.String()
}

// clause 可选条件:present为false时跳过
type clause struct {
	present bool
	sql     string // 参数位置用%s占位,如 "title ILIKE %s"
	value   func() any
}

// apply 按顺序把出现的条件渲染为 "sql片段",并绑定参数
func (q *query) apply(clauses []clause) []string {
	var parts []string
	for _, c := range clauses {
		if !c.present {
			continue
		}
		parts = append(parts, strings.Replace(c.sql, "%s", q.bind(c.value()), 1))
	}
	return parts
}

// buildFindAll 列表查询
// 条件顺序固定:title → author → publication_year,之后是排序和分页
func buildFindAll(f book.Filter) (string, []any) {
	q := newQuery("SELECT " + bookColumns + " FROM books WHERE 1=1")

	conds := q.apply([]clause{
		{f.Title != nil, "title ILIKE %s", func() any { return containsPattern(*f.Title) }},
		{f.Author != nil, "author ILIKE %s", func() any { return containsPattern(*f.Author) }},
		{f.PublicationYear != nil, "publication_year = %s", func() any { return *f.PublicationYear }},
	})
	for _, c := range conds {
		q.write(" AND ", c)
	}

	q.write(" ORDER BY created_at DESC")

	if f.Limit != nil {
		q.write(" LIMIT ", q.bind(*f.Limit))
	}
	if f.Offset != nil {
		q.write(" OFFSET ", q.bind(*f.Offset))
	}

	return q.String(), q.args
}

// buildUpdate 部分更新
// 字段顺序固定:title → author → publication_year → isbn,
// 没有任何字段时ok=false,调用方不应发出UPDATE
func buildUpdate(id int64, p book.Patch) (stmt string, args []any, ok bool) {
	if p.IsEmpty() {
		return "", nil, false
	}

	q := newQuery("UPDATE books SET ")
	sets := q.apply([]clause{
		{p.Title != nil, "title = %s", func() any { return *p.Title }},
		{p.Author != nil, "author = %s", func() any { return *p.Author }},
		{p.PublicationYear != nil, "publication_year = %s", func() any { return *p.PublicationYear }},
		{p.ISBN != nil, "isbn = %s", func() any { return *p.ISBN }},
	})

	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	q.write(strings.Join(sets, ", "))
	q.write(" WHERE id = ", q.bind(id), " RETURNING ", bookColumns)

	return q.String(), q.args, true
}

// likeEscaper 转义LIKE通配符,用户输入的 % 和 _ 按字面匹配
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern 构造"包含"匹配模式 %term%
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
