// Package docs 图书目录服务的Swagger文档
//
// 由 swag init -g cmd/api/main.go 生成,修改handler注释后需要重新生成
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/books": {
            "get": {
                "description": "按书名、作者模糊匹配,按出版年份精确匹配,按创建时间倒序",
                "produces": ["application/json"],
                "tags": ["图书"],
                "summary": "图书列表",
                "parameters": [
                    {"type": "string", "description": "书名(包含匹配,不区分大小写)", "name": "title", "in": "query"},
                    {"type": "string", "description": "作者(包含匹配,不区分大小写)", "name": "author", "in": "query"},
                    {"type": "integer", "description": "出版年份", "name": "publication_year", "in": "query"},
                    {"type": "integer", "description": "每页条数(1-100,默认10)", "name": "limit", "in": "query"},
                    {"type": "integer", "description": "偏移量(默认0)", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "参数校验失败", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            },
            "post": {
                "description": "ISBN全局唯一,重复时返回409",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["图书"],
                "summary": "创建图书",
                "parameters": [
                    {"description": "图书信息", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateBookRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "参数校验失败", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "409": {"description": "ISBN已存在", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "503": {"description": "数据库繁忙", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/books/search": {
            "get": {
                "description": "按相关度排序,相关度相同时按创建时间倒序",
                "produces": ["application/json"],
                "tags": ["图书"],
                "summary": "书名全文检索",
                "parameters": [
                    {"type": "string", "description": "检索关键词", "name": "title", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "关键词为空", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/books/stats/by-year": {
            "get": {
                "produces": ["application/json"],
                "tags": ["统计"],
                "summary": "按年份统计",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/books/stats/count/{year}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["统计"],
                "summary": "单个年份的图书数量",
                "parameters": [
                    {"type": "integer", "description": "出版年份", "name": "year", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "年份不是整数", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/books/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["图书"],
                "summary": "图书详情",
                "parameters": [
                    {"type": "integer", "description": "图书ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "ID不是正整数", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "404": {"description": "图书不存在", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            },
            "put": {
                "description": "只更新请求体中出现的字段;没有任何字段时返回400",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["图书"],
                "summary": "更新图书",
                "parameters": [
                    {"type": "integer", "description": "图书ID", "name": "id", "in": "path", "required": true},
                    {"description": "需要更新的字段", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateBookRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "参数校验失败", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "404": {"description": "图书不存在", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "409": {"description": "ISBN已存在", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["图书"],
                "summary": "删除图书",
                "parameters": [
                    {"type": "integer", "description": "图书ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "删除成功,无响应体"},
                    "400": {"description": "ID不是正整数", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "404": {"description": "图书不存在", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.CreateBookRequest": {
            "type": "object",
            "properties": {
                "author": {"type": "string", "example": "Alan Donovan"},
                "isbn": {"type": "string", "example": "9780134190440"},
                "publication_year": {"type": "integer", "example": 2015},
                "title": {"type": "string", "example": "The Go Programming Language"}
            }
        },
        "dto.UpdateBookRequest": {
            "type": "object",
            "properties": {
                "author": {"type": "string", "example": "Alan Donovan"},
                "isbn": {"type": "string", "example": "9780134190440"},
                "publication_year": {"type": "integer", "example": 2016},
                "title": {"type": "string", "example": "The Go Programming Language"}
            }
        },
        "book.BookDTO": {
            "type": "object",
            "properties": {
                "author": {"type": "string", "example": "Alan Donovan"},
                "created_at": {"type": "string", "example": "2026-10-18T10:30:00Z"},
                "id": {"type": "integer", "example": 1},
                "isbn": {"type": "string", "example": "9780134190440"},
                "publication_year": {"type": "integer", "example": 2015},
                "title": {"type": "string", "example": "The Go Programming Language"},
                "updated_at": {"type": "string", "example": "2026-10-18T10:30:00Z"}
            }
        },
        "book.YearCountDTO": {
            "type": "object",
            "properties": {
                "count": {"type": "integer", "example": 3},
                "publication_year": {"type": "integer", "example": 2015}
            }
        },
        "book.YearTotalDTO": {
            "type": "object",
            "properties": {
                "count": {"type": "integer", "example": 3},
                "year": {"type": "integer", "example": 2015}
            }
        },
        "errors.FieldError": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "response.ErrorResponse": {
            "type": "object",
            "properties": {
                "details": {"type": "array", "items": {"$ref": "#/definitions/errors.FieldError"}},
                "errorCode": {"type": "integer"},
                "message": {"type": "string"},
                "statusCode": {"type": "integer"}
            }
        },
        "response.Pagination": {
            "type": "object",
            "properties": {
                "limit": {"type": "integer"},
                "offset": {"type": "integer"},
                "total": {"type": "integer"}
            }
        },
        "response.Response": {
            "type": "object",
            "properties": {
                "data": {},
                "message": {"type": "string"},
                "pagination": {"$ref": "#/definitions/response.Pagination"},
                "statusCode": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "图书目录服务 API",
	Description:      "图书目录的增删改查、全文检索与按年份统计",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
