package swagger

import "github.com/swaggo/swag"

// Health and readiness are served outside basePath at /health and /ready.
const docTemplate = `{
    "swagger": "2.0",
    "info": {"title": "School Portal API", "description": "Multi-school administration console: students, attendance capture, exams, parent queries and fees.", "version": "1.0.0"},
    "basePath": "/api",
    "schemes": ["http"],
    "securityDefinitions": {"BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}},
    "tags": [{"name": "Auth"}, {"name": "Schools"}, {"name": "Students"}, {"name": "Teachers"}, {"name": "Parents"}, {"name": "Attendance"}, {"name": "Capture"}, {"name": "Exams"}, {"name": "Queries"}, {"name": "Fees"}, {"name": "Activity"}, {"name": "Metrics"}],
    "paths": {
        "/login": {"post": {"tags": ["Auth"], "summary": "Sign in to a school", "parameters": [{"name": "X-School-Domain", "in": "header", "type": "string"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/logout": {"post": {"tags": ["Auth"], "summary": "Sign out", "responses": {"204": {"description": "No Content"}}, "security": [{"BearerAuth": []}]}},
        "/me": {"get": {"tags": ["Auth"], "summary": "Current user", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}},
        "/schools": {"get": {"tags": ["Schools"], "summary": "List schools", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/schools/{domain}": {"get": {"tags": ["Schools"], "summary": "Get school by domain", "parameters": [{"name": "domain", "in": "path", "type": "string", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}}},
        "/students": {"get": {"tags": ["Students"], "summary": "List students", "parameters": [{"name": "class", "in": "query", "type": "string", "required": false}, {"name": "section", "in": "query", "type": "string", "required": false}, {"name": "parent_id", "in": "query", "type": "string", "required": false}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}, "post": {"tags": ["Students"], "summary": "Create student", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/Student"}}], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error"}}, "security": [{"BearerAuth": []}]}},
        "/students/{id}": {"get": {"tags": ["Students"], "summary": "Get student", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}, "put": {"tags": ["Students"], "summary": "Update student", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/Student"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}},
        "/teachers": {"get": {"tags": ["Teachers"], "summary": "List teachers", "parameters": [{"name": "class", "in": "query", "type": "string", "required": false}, {"name": "section", "in": "query", "type": "string", "required": false}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}, "post": {"tags": ["Teachers"], "summary": "Create teacher", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/Teacher"}}], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error"}}, "security": [{"BearerAuth": []}]}},
        "/teachers/{id}": {"get": {"tags": ["Teachers"], "summary": "Get teacher", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}, "put": {"tags": ["Teachers"], "summary": "Update teacher", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/Teacher"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}},
        "/parents": {"get": {"tags": ["Parents"], "summary": "List parents", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}, "post": {"tags": ["Parents"], "summary": "Create parent", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/Parent"}}], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error"}}, "security": [{"BearerAuth": []}]}},
        "/parents/{id}": {"get": {"tags": ["Parents"], "summary": "Get parent", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}, "put": {"tags": ["Parents"], "summary": "Update parent", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/Parent"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}},
        "/parents/{id}/children": {"get": {"tags": ["Parents"], "summary": "List a parent's children", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}},
        "/attendance": {"get": {"tags": ["Attendance"], "summary": "Class attendance", "parameters": [{"name": "class", "in": "query", "type": "string", "required": true}, {"name": "section", "in": "query", "type": "string", "required": false}, {"name": "date", "in": "query", "type": "string", "required": false}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}, "post": {"tags": ["Attendance"], "summary": "Record attendance", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AttendanceRecord"}}], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error"}}, "security": [{"BearerAuth": []}]}},
        "/attendance/{id}": {"put": {"tags": ["Attendance"], "summary": "Update attendance", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AttendanceRecord"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}},
        "/attendance/student/{id}": {"get": {"tags": ["Attendance"], "summary": "Student attendance", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}, {"name": "range", "in": "query", "type": "string", "required": false}, {"name": "date", "in": "query", "type": "string", "required": false}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}},
        "/attendance/student/{id}/report": {"get": {"tags": ["Attendance"], "summary": "Student attendance report", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}, {"name": "range", "in": "query", "type": "string", "required": false}, {"name": "date", "in": "query", "type": "string", "required": false}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}},
        "/attendance/student/{id}/export": {"get": {"tags": ["Attendance"], "summary": "Export attendance report", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}, {"name": "range", "in": "query", "type": "string", "required": false}, {"name": "date", "in": "query", "type": "string", "required": false}, {"name": "format", "in": "query", "type": "string", "required": false}], "responses": {"200": {"description": "File"}}, "security": [{"BearerAuth": []}]}},
        "/attendance/capture": {"get": {"tags": ["Capture"], "summary": "Current capture workflow", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}},
        "/attendance/capture/configure": {"post": {"tags": ["Capture"], "summary": "Choose date and time slot", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}},
        "/attendance/capture/select": {"post": {"tags": ["Capture"], "summary": "Choose class and section", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}},
        "/attendance/capture/photo": {"post": {"tags": ["Capture"], "summary": "Attach photo for current student", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}},
        "/attendance/capture/retake": {"post": {"tags": ["Capture"], "summary": "Discard current photo", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}},
        "/attendance/capture/present": {"post": {"tags": ["Capture"], "summary": "Mark current student present", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "409": {"description": "Photo required"}}, "security": [{"BearerAuth": []}]}},
        "/attendance/capture/absent": {"post": {"tags": ["Capture"], "summary": "Mark current student absent", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}},
        "/attendance/capture/save": {"post": {"tags": ["Capture"], "summary": "Save captured attendance", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}},
        "/attendance/capture/reset": {"post": {"tags": ["Capture"], "summary": "Reset capture workflow", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}},
        "/exam-results": {"get": {"tags": ["Exams"], "summary": "List exam results", "parameters": [{"name": "student_id", "in": "query", "type": "string", "required": false}, {"name": "class", "in": "query", "type": "string", "required": false}, {"name": "section", "in": "query", "type": "string", "required": false}, {"name": "exam_type", "in": "query", "type": "string", "required": false}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}, "post": {"tags": ["Exams"], "summary": "Record exam result", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ExamResult"}}], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error"}}, "security": [{"BearerAuth": []}]}},
        "/exam-results/{id}": {"put": {"tags": ["Exams"], "summary": "Update exam result", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ExamResult"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}, "delete": {"tags": ["Exams"], "summary": "Delete exam result", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}], "responses": {"204": {"description": "No Content"}}, "security": [{"BearerAuth": []}]}},
        "/queries": {"get": {"tags": ["Queries"], "summary": "List parent queries", "parameters": [{"name": "student_id", "in": "query", "type": "string", "required": false}, {"name": "parent_id", "in": "query", "type": "string", "required": false}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}, "post": {"tags": ["Queries"], "summary": "Submit query", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/Query"}}], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error"}}, "security": [{"BearerAuth": []}]}},
        "/queries/{id}": {"get": {"tags": ["Queries"], "summary": "Get query", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}, "put": {"tags": ["Queries"], "summary": "Update query", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/Query"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}},
        "/queries/{id}/respond": {"post": {"tags": ["Queries"], "summary": "Respond to query", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}},
        "/queries/{id}/status": {"patch": {"tags": ["Queries"], "summary": "Change query status", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}},
        "/fees": {"get": {"tags": ["Fees"], "summary": "List fee records", "parameters": [{"name": "student_id", "in": "query", "type": "string", "required": false}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}, "post": {"tags": ["Fees"], "summary": "Create fee record", "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/FeeRecord"}}], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Validation error"}}, "security": [{"BearerAuth": []}]}},
        "/fees/{id}": {"get": {"tags": ["Fees"], "summary": "Get fee record", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}, "put": {"tags": ["Fees"], "summary": "Update fee record", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/FeeRecord"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}},
        "/fees/{id}/payments": {"post": {"tags": ["Fees"], "summary": "Record installment payment", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}},
        "/fees/{id}/installments": {"post": {"tags": ["Fees"], "summary": "Add installment", "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}},
        "/activity": {"get": {"tags": ["Activity"], "summary": "Recent operator activity", "parameters": [{"name": "limit", "in": "query", "type": "integer", "required": false}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}},
        "/metrics/summary": {"get": {"tags": ["Metrics"], "summary": "Metrics summary", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}, "security": [{"BearerAuth": []}]}}
    },
    "definitions": {
        "LoginRequest": {"type": "object", "properties": {"email": {"type": "string"}, "password": {"type": "string"}, "school_domain": {"type": "string"}}, "required": ["email", "password", "school_domain"]},
        "Student": {"type": "object", "properties": {"id": {"type": "string"}, "name": {"type": "string"}, "class": {"type": "string"}, "section": {"type": "string"}, "parent_id": {"type": "string"}, "phone": {"type": "string"}, "email": {"type": "string"}, "address": {"type": "string"}}, "required": ["name", "class", "section"]},
        "Teacher": {"type": "object", "properties": {"id": {"type": "string"}, "name": {"type": "string"}, "class": {"type": "string"}, "section": {"type": "string"}, "phone": {"type": "string"}, "email": {"type": "string"}}, "required": ["name"]},
        "Parent": {"type": "object", "properties": {"id": {"type": "string"}, "father_name": {"type": "string"}, "mother_name": {"type": "string"}, "father_phone": {"type": "string"}, "mother_phone": {"type": "string"}, "father_email": {"type": "string"}, "mother_email": {"type": "string"}, "children_ids": {"type": "array", "items": {"type": "string"}}, "phone": {"type": "string"}, "address": {"type": "string"}, "emergency_contact": {"type": "string"}}},
        "AttendanceRecord": {"type": "object", "properties": {"id": {"type": "string"}, "student_id": {"type": "string"}, "date": {"type": "string"}, "morning": {"type": "boolean"}, "afternoon": {"type": "boolean"}, "evening": {"type": "boolean"}, "captured_images": {"type": "object", "additionalProperties": {"type": "string"}}}, "required": ["student_id", "date"]},
        "ExamResult": {"type": "object", "properties": {"id": {"type": "string"}, "student_id": {"type": "string"}, "exam_type": {"type": "string"}, "date": {"type": "string"}, "scores": {"type": "object", "additionalProperties": {"type": "number"}}}, "required": ["student_id", "exam_type", "date", "scores"]},
        "Query": {"type": "object", "properties": {"id": {"type": "string"}, "parent_id": {"type": "string"}, "student_id": {"type": "string"}, "recipient_type": {"type": "string"}, "recipient_id": {"type": "string"}, "subject": {"type": "string"}, "message": {"type": "string"}, "status": {"type": "string"}, "response": {"type": "string"}, "response_date": {"type": "string"}, "date": {"type": "string"}}},
        "FeeRecord": {"type": "object", "properties": {"id": {"type": "string"}, "student_id": {"type": "string"}, "academic_year": {"type": "string"}, "total_amount": {"type": "number"}, "due_date": {"type": "string"}, "installments": {"type": "array", "items": {"$ref": "#/definitions/Installment"}}}},
        "Installment": {"type": "object", "properties": {"id": {"type": "string"}, "amount": {"type": "number"}, "due_date": {"type": "string"}, "status": {"type": "string"}, "paid_date": {"type": "string"}, "paid_amount": {"type": "number"}}},
        "APIError": {"type": "object", "properties": {"code": {"type": "string"}, "message": {"type": "string"}, "status": {"type": "integer"}}},
        "ResponseEnvelope": {"type": "object", "properties": {"data": {"type": "object"}, "error": {"$ref": "#/definitions/APIError"}, "meta": {"type": "object"}}}
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
