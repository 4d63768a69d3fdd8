package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	"github.com/xiebiao/bookcatalog/pkg/response"
	"github.com/xiebiao/bookcatalog/pkg/validator"
)

// BookHandler 图书HTTP处理器
// 职责只有三件事:解析请求 → 调用用例 → 输出统一响应
type BookHandler struct {
	create *appbook.CreateBookUseCase
	get    *appbook.GetBookUseCase
	list   *appbook.ListBooksUseCase
	update *appbook.UpdateBookUseCase
	delete *appbook.DeleteBookUseCase
	search *appbook.SearchBooksUseCase
	stats  *appbook.BookStatsUseCase
	log    *logrus.Logger
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	create *appbook.CreateBookUseCase,
	get *appbook.GetBookUseCase,
	list *appbook.ListBooksUseCase,
	update *appbook.UpdateBookUseCase,
	del *appbook.DeleteBookUseCase,
	search *appbook.SearchBooksUseCase,
	stats *appbook.BookStatsUseCase,
	log *logrus.Logger,
) *BookHandler {
	return &BookHandler{
		create: create,
		get:    get,
		list:   list,
		update: update,
		delete: del,
		search: search,
		stats:  stats,
		log:    log,
	}
}

// Register 注册图书路由
// /search 和 /stats/* 是静态路径,gin优先于 /:id 匹配
func (h *BookHandler) Register(r gin.IRouter) {
	books := r.Group("/books")
	{
		books.POST("", h.CreateBook)
		books.GET("", h.ListBooks)
		books.GET("/search", h.SearchBooks)
		books.GET("/stats/by-year", h.CountsByYear)
		books.GET("/stats/count/:year", h.CountByYear)
		books.GET("/:id", h.GetBook)
		books.PUT("/:id", h.UpdateBook)
		books.DELETE("/:id", h.DeleteBook)
	}
}

// CreateBook 创建图书
// @Summary      创建图书
// @Description  ISBN全局唯一,重复时返回409
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateBookRequest true "图书信息"
// @Success      201 {object} response.Response{data=dto.BookResponse}
// @Failure      400 {object} response.ErrorResponse "参数校验失败"
// @Failure      409 {object} response.ErrorResponse "ISBN已存在"
// @Failure      503 {object} response.ErrorResponse "数据库繁忙"
// @Router       /books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	// 1. 参数绑定(类型错误在这里拦截,字段规则由领域层校验)
	var req dto.CreateBookRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, h.log, err)
		return
	}

	// 2. 调用应用层用例
	result, err := h.create.Execute(c.Request.Context(), req.ToUseCase())
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	response.Success(c, http.StatusCreated, "图书创建成功", result)
}

// ListBooks 图书列表
// @Summary      图书列表
// @Description  按书名、作者模糊匹配,按出版年份精确匹配,按创建时间倒序
// @Tags         图书
// @Produce      json
// @Param        title            query string false "书名(包含匹配,不区分大小写)"
// @Param        author           query string false "作者(包含匹配,不区分大小写)"
// @Param        publication_year query int    false "出版年份"
// @Param        limit            query int    false "每页条数(1-100,默认10)"
// @Param        offset           query int    false "偏移量(默认0)"
// @Success      200 {object} response.Response{data=[]dto.BookResponse,pagination=response.Pagination}
// @Failure      400 {object} response.ErrorResponse "参数校验失败"
// @Router       /books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	q, err := dto.ParseListBooksQuery(c.Request.URL.Query())
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	result, err := h.list.Execute(c.Request.Context(), q.ToUseCase())
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	response.SuccessWithPage(c, "图书列表获取成功", result.List, response.Pagination{
		Limit:  result.Limit,
		Offset: result.Offset,
		Total:  result.Total,
	})
}

// SearchBooks 书名全文检索
// @Summary      书名全文检索
// @Description  按相关度排序,相关度相同时按创建时间倒序
// @Tags         图书
// @Produce      json
// @Param        title query string true "检索关键词"
// @Success      200 {object} response.Response{data=[]dto.BookResponse}
// @Failure      400 {object} response.ErrorResponse "关键词为空"
// @Router       /books/search [get]
func (h *BookHandler) SearchBooks(c *gin.Context) {
	result, err := h.search.Execute(c.Request.Context(), c.Query("title"))
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	response.Success(c, http.StatusOK, "图书检索完成", result)
}

// CountsByYear 按出版年份分组统计
// @Summary      按年份统计
// @Tags         统计
// @Produce      json
// @Success      200 {object} response.Response{data=[]dto.YearCountResponse}
// @Router       /books/stats/by-year [get]
func (h *BookHandler) CountsByYear(c *gin.Context) {
	result, err := h.stats.CountsByYear(c.Request.Context())
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	response.Success(c, http.StatusOK, "按年份统计完成", result)
}

// CountByYear 单个年份的图书数量
// @Summary      单个年份的图书数量
// @Tags         统计
// @Produce      json
// @Param        year path int true "出版年份"
// @Success      200 {object} response.Response{data=dto.YearTotalResponse}
// @Failure      400 {object} response.ErrorResponse "年份不是整数"
// @Router       /books/stats/count/{year} [get]
func (h *BookHandler) CountByYear(c *gin.Context) {
	year, err := parseYear(c.Param("year"))
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	result, err := h.stats.CountByYear(c.Request.Context(), year)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	response.Success(c, http.StatusOK, fmt.Sprintf("%d年图书数量统计完成", year), result)
}

// GetBook 图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      400 {object} response.ErrorResponse "ID不是正整数"
// @Failure      404 {object} response.ErrorResponse "图书不存在"
// @Router       /books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	result, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	response.Success(c, http.StatusOK, "图书获取成功", result)
}

// UpdateBook 部分更新图书
// @Summary      更新图书
// @Description  只更新请求体中出现的字段;没有任何字段时返回400
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        id      path int                   true "图书ID"
// @Param        request body dto.UpdateBookRequest true "需要更新的字段"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      400 {object} response.ErrorResponse "参数校验失败"
// @Failure      404 {object} response.ErrorResponse "图书不存在"
// @Failure      409 {object} response.ErrorResponse "ISBN已存在"
// @Router       /books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	var req dto.UpdateBookRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, h.log, err)
		return
	}

	result, err := h.update.Execute(c.Request.Context(), req.ToUseCase(id))
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	response.Success(c, http.StatusOK, "图书更新成功", result)
}

// DeleteBook 删除图书
// @Summary      删除图书
// @Tags         图书
// @Param        id path int true "图书ID"
// @Success      204 "删除成功,无响应体"
// @Failure      400 {object} response.ErrorResponse "ID不是正整数"
// @Failure      404 {object} response.ErrorResponse "图书不存在"
// @Router       /books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, h.log, err)
		return
	}

	if err := h.delete.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, h.log, err)
		return
	}

	response.NoContent(c)
}

// parseID 路径参数id必须是正整数
func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, book.ErrInvalidID
	}
	return id, nil
}

// parseYear 年份必须是32位整数(与数据库INTEGER列一致)
func parseYear(raw string) (int, error) {
	year, err := strconv.ParseInt(raw, 10, 32)
	if errors.Is(err, strconv.ErrRange) {
		return 0, validator.Failed("year", "超出整数范围")
	}
	if err != nil {
		return 0, validator.Failed("year", "必须是整数")
	}
	return int(year), nil
}

// bindJSON 解析请求体
// JSON格式错误和字段类型不匹配都转换为校验错误,在调用用例之前返回
func bindJSON(c *gin.Context, dst any) error {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return validator.Failed(typeErr.Field, fmt.Sprintf("类型不正确,应为%s", jsonType(typeErr.Type.Kind().String())))
	}
	return validator.Failed("body", "请求体不是合法的JSON")
}

// jsonType Go类型名 → JSON类型名
func jsonType(kind string) string {
	switch kind {
	case "string":
		return "字符串"
	case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64", "float32", "float64":
		return "数字"
	case "bool":
		return "布尔值"
	default:
		return kind
	}
}
