package i18n

var english = map[string]string{
	"app.title":          "Admin Dashboard",
	"app.loading":        "Loading...",
	"app.reading_config": "Reading config...",
	"app.no_sections":    "No resources available for this account",

	"auth.title":         "Sign in",
	"auth.username":      "Username",
	"auth.password":      "Password",
	"auth.signing_in":    "Signing in...",
	"auth.failed":        "Sign in failed",
	"auth.signed_out":    "Signed out",
	"auth.session_ended": "Your session has expired",
	"auth.signed_in_as":  "Signed in as {0}",
	"auth.hint":          "tab: next field · enter: sign in · ctrl+c: quit",

	"crud.search":            "Search: ",
	"crud.empty":             "Nothing here yet",
	"crud.fetch_failed":      "Could not load {0}",
	"crud.retry":             "press r to retry",
	"crud.page":              "Page {0} of {1} · {2} items",
	"crud.selected":          "{0} selected",
	"crud.create_title":      "New {0}",
	"crud.edit_title":        "Edit {0}",
	"crud.add_child_title":   "New {0} under {1}",
	"crud.created":           "{0} created",
	"crud.updated":           "{0} updated",
	"crud.delete_confirm":    "Delete {0} \"{1}\"? (y/n)",
	"crud.delete_many":       "Delete {0} selected {1}? (y/n)",
	"crud.deleting":          "Deleting...",
	"crud.deleted":           "{0} deleted",
	"crud.deleted_named":     "{0} \"{1}\" was deleted",
	"crud.delete_failed":     "Could not delete {0}",
	"crud.bulk_deleted":      "{0} {1} deleted",
	"crud.bulk_partial":      "{0} deleted, {1} failed, {2} skipped",
	"crud.fetching":          "Fetching {0}",
	"crud.fetched":           "{0} fetched",
	"form.required":          "{0} is required",
	"form.invalid":           "{0} is invalid",
	"form.submit_hint":       "enter: save · tab: next field · esc: cancel",
	"form.conflict":          "A {0} with these values already exists",
	"form.saving":            "Saving...",
	"tree.root":              "(root)",
	"tree.no_children":       "no children",
	"resource.users":         "Users",
	"resource.user":          "user",
	"resource.sites":         "Sites",
	"resource.site":          "site",
	"resource.vendors":       "Vendors",
	"resource.vendor":        "vendor",
	"resource.categories":    "Categories",
	"resource.category":      "category",
	"resource.civilians":     "Civilians",
	"resource.civilian":      "civilian",
	"resource.user-types":    "User types",
	"resource.user-type":     "user type",
	"field.name":             "Name",
	"field.email":            "Email",
	"field.phone":            "Phone",
	"field.address":          "Address",
	"field.description":      "Description",
	"field.code":             "Code",
	"field.national_id":      "National ID",
	"field.user_type":        "User type ID",
	"field.created":          "Created",
	"field.children":         "Children",
}

var arabic = map[string]string{
	"app.title":          "لوحة الإدارة",
	"app.loading":        "جار التحميل...",
	"app.reading_config": "جار قراءة الإعدادات...",
	"app.no_sections":    "لا توجد موارد متاحة لهذا الحساب",

	"auth.title":         "تسجيل الدخول",
	"auth.username":      "اسم المستخدم",
	"auth.password":      "كلمة المرور",
	"auth.signing_in":    "جار تسجيل الدخول...",
	"auth.failed":        "فشل تسجيل الدخول",
	"auth.signed_out":    "تم تسجيل الخروج",
	"auth.session_ended": "انتهت صلاحية الجلسة",
	"auth.signed_in_as":  "تم تسجيل الدخول باسم {0}",
	"auth.hint":          "tab: الحقل التالي · enter: تسجيل الدخول · ctrl+c: خروج",

	"crud.search":            "بحث: ",
	"crud.empty":             "لا توجد عناصر بعد",
	"crud.fetch_failed":      "تعذر تحميل {0}",
	"crud.retry":             "اضغط r لإعادة المحاولة",
	"crud.page":              "الصفحة {0} من {1} · {2} عنصر",
	"crud.selected":          "تم تحديد {0}",
	"crud.create_title":      "{0} جديد",
	"crud.edit_title":        "تعديل {0}",
	"crud.add_child_title":   "{0} جديد ضمن {1}",
	"crud.created":           "تم إنشاء {0}",
	"crud.updated":           "تم تحديث {0}",
	"crud.delete_confirm":    "حذف {0} \"{1}\"؟ (y/n)",
	"crud.delete_many":       "حذف {0} من {1} المحددة؟ (y/n)",
	"crud.deleting":          "جار الحذف...",
	"crud.deleted":           "تم حذف {0}",
	"crud.deleted_named":     "تم حذف {0} \"{1}\"",
	"crud.delete_failed":     "تعذر حذف {0}",
	"crud.bulk_deleted":      "تم حذف {0} من {1}",
	"crud.bulk_partial":      "تم حذف {0}، وفشل {1}، وتم تخطي {2}",
	"crud.fetching":          "جار جلب {0}",
	"crud.fetched":           "تم جلب {0}",
	"form.required":          "{0} مطلوب",
	"form.invalid":           "{0} غير صالح",
	"form.submit_hint":       "enter: حفظ · tab: الحقل التالي · esc: إلغاء",
	"form.conflict":          "يوجد {0} بهذه القيم بالفعل",
	"form.saving":            "جار الحفظ...",
	"tree.root":              "(الجذر)",
	"tree.no_children":       "لا توجد عناصر فرعية",
	"resource.users":         "المستخدمون",
	"resource.user":          "مستخدم",
	"resource.sites":         "المواقع",
	"resource.site":          "موقع",
	"resource.vendors":       "الموردون",
	"resource.vendor":        "مورد",
	"resource.categories":    "الفئات",
	"resource.category":      "فئة",
	"resource.civilians":     "المدنيون",
	"resource.civilian":      "مدني",
	"resource.user-types":    "أنواع المستخدمين",
	"resource.user-type":     "نوع مستخدم",
	"field.name":             "الاسم",
	"field.email":            "البريد الإلكتروني",
	"field.phone":            "الهاتف",
	"field.address":          "العنوان",
	"field.description":      "الوصف",
	"field.code":             "الرمز",
	"field.national_id":      "رقم الهوية الوطنية",
	"field.user_type":        "معرف نوع المستخدم",
	"field.created":          "تاريخ الإنشاء",
	"field.children":         "العناصر الفرعية",
}
